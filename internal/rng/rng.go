// Package rng implements the seeded PRNG factory: no generator is ever
// shared globally. Each call site derives a fresh generator from a magic
// constant, the campaign seed, and zero or more context values.
//
// Determinism is the entire point of this package: the same
// (magic, campaignSeed, ctx...) must produce bitwise-identical sequences on
// every platform and every build, so every integer fed into the hash has an
// explicit, fixed width and context values are always hashed in the order
// they were passed.
package rng

import (
	"github.com/cespare/xxhash/v2"
)

// Ctx is a single piece of differentiating context fed to New, in a fixed
// width so the resulting hash never depends on platform int size.
type Ctx interface {
	appendTo(d *xxhash.Digest)
}

// U8, U16, U32, U64 wrap fixed-width integers as hashable context. Callers
// pick the narrowest type that fits so two call sites can't accidentally
// collide by zero-extension.
type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	Str string
)

func (v U8) appendTo(d *xxhash.Digest)  { d.Write([]byte{byte(v)}) }
func (v U16) appendTo(d *xxhash.Digest) { d.Write([]byte{byte(v), byte(v >> 8)}) }
func (v U32) appendTo(d *xxhash.Digest) {
	d.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}
func (v U64) appendTo(d *xxhash.Digest) {
	d.Write([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
}
func (v Str) appendTo(d *xxhash.Digest) { d.Write([]byte(v)) }

// Source is a generator derived deterministically from its construction
// inputs. It is owned by the call site that created it and dropped after
// use; Source never needs to be (and must not be) shared across unrelated
// consumers, since doing so would couple their sequences together.
type Source struct {
	state [4]uint32 // xoshiro128++ state
}

// New derives a fresh Source from magic, campaignSeed, and ctx, in that
// order. Two call sites must use distinct magic constants (see the magic.go
// registry) so that otherwise-identical context never collides.
func New(magic uint64, campaignSeed uint64, ctx ...Ctx) *Source {
	d := xxhash.New()
	U64(magic).appendTo(d)
	U64(campaignSeed).appendTo(d)
	for _, c := range ctx {
		c.appendTo(d)
	}
	seed := d.Sum64()
	return &Source{state: splitmix64Seed(seed)}
}

// splitmix64Seed expands a single 64-bit digest into the 128 bits of
// xoshiro128++ state via four rounds of SplitMix64, guaranteeing a non-zero
// state (xoshiro128++ is degenerate at the all-zero state).
func splitmix64Seed(seed uint64) [4]uint32 {
	var out [4]uint32
	x := seed
	for i := range out {
		x += 0x9E3779B97F4A7C15
		z := x
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z = z ^ (z >> 31)
		out[i] = uint32(z)
	}
	if out == ([4]uint32{}) {
		out[0] = 1
	}
	return out
}

func rotl(x uint32, k int) uint32 {
	return (x << k) | (x >> (32 - k))
}

// nextUint32 advances the xoshiro128++ state and returns the next output word.
func (s *Source) nextUint32() uint32 {
	result := rotl(s.state[0]+s.state[3], 7) + s.state[0]

	t := s.state[1] << 9

	s.state[2] ^= s.state[0]
	s.state[3] ^= s.state[1]
	s.state[1] ^= s.state[2]
	s.state[0] ^= s.state[3]

	s.state[2] ^= t

	s.state[3] = rotl(s.state[3], 11)

	return result
}

// Uint64 returns a pseudo-random 64-bit value, composed from two
// consecutive xoshiro128++ outputs.
func (s *Source) Uint64() uint64 {
	hi := uint64(s.nextUint32())
	lo := uint64(s.nextUint32())
	return hi<<32 | lo
}

// Intn returns a uniform pseudo-random integer in [a, b). Panics if b <= a.
func (s *Source) Intn(a, b int) int {
	if b <= a {
		panic("rng: Intn requires b > a")
	}
	span := uint64(b - a)
	// Lemire's bounded-integer method, using the 32-bit word directly since
	// span is always small (dungeon/gameplay ranges) and this avoids the
	// modulo-bias long tail without needing 64-bit multiplication tricks.
	return a + int(s.boundedUint32(uint32(span)))
}

// boundedUint32 returns a uniform value in [0, bound) without modulo bias.
func (s *Source) boundedUint32(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	// threshold is 2^32 mod bound; a draw whose low product word falls
	// below it is rejected and redrawn.
	threshold := -bound % bound
	for {
		v := s.nextUint32()
		prod := uint64(v) * uint64(bound)
		if uint32(prod) >= threshold {
			return uint32(prod >> 32)
		}
	}
}

// Float64 returns a uniform pseudo-random value in [0, 1).
func (s *Source) Float64() float64 {
	// Use the top 53 bits of a 64-bit draw for full float64 mantissa precision.
	const mantissaBits = 53
	v := s.Uint64() >> (64 - mantissaBits)
	return float64(v) / float64(uint64(1)<<mantissaBits)
}

// Bool returns a uniform pseudo-random boolean.
func (s *Source) Bool() bool {
	return s.nextUint32()&1 == 1
}

// WeightedChoice selects an index into weights using weighted random
// selection. Weights must be non-negative. Returns -1 if weights is empty
// or all weights are zero.
func (s *Source) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}
	pick := s.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if pick < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Shuffle pseudo-randomizes the order of n elements using swap, following
// the Fisher-Yates algorithm.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(0, i+1)
		swap(i, j)
	}
}
