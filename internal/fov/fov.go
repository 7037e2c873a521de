// Package fov implements symmetric shadow-casting field of view: a lazy,
// resumable, non-allocating (after setup) sequence of (x, y, symmetric)
// visibility triples, with diamond-shaped wall occlusion and a mixed
// symmetric/asymmetric visibility rule for walls.
//
// The algorithm processes eight 45-degree octants independently, each
// column (distance from the origin) carrying an "even" and "odd" list of
// active sight wedges — no recursion, no heap growth once the two lists
// have reached their working size.
package fov

import "github.com/rugg/ruggrogue/internal/geom"

// Map answers the two queries the FOV iterator needs. Consumers supply
// their own implementation (typically backed by worldmap.Map).
type Map interface {
	// InBounds reports whether (x, y) is a valid map coordinate.
	InBounds(x, y int) bool
	// IsOpaque reports whether (x, y) blocks sight. Only ever called for
	// in-bounds coordinates.
	IsOpaque(x, y int) bool
}

// Shape selects the overall visibility footprint. CirclePlus is the only
// shape this specification names: an inclusive circle of radius r+0.5.
type Shape uint8

const (
	CirclePlus Shape = iota
)

// Tile is one emission from the iterator: a visible map coordinate and
// whether it was reached symmetrically (origin-center to tile-center is
// unobstructed) as opposed to only asymmetrically (a wall whose stem was
// reached but whose center is not mutually visible).
type Tile struct {
	X, Y      int
	Symmetric bool
}

// octantMult gives the (xx, xy, yx, yy) coefficients that convert
// octant-local (x, y) into a map-relative offset for each of the 8
// octants. This is the standard shadow-casting octant transform table.
var octantMult = [8][4]int{
	{1, 0, 0, -1},
	{0, 1, -1, 0},
	{0, -1, -1, 0},
	{-1, 0, 0, -1},
	{-1, 0, 0, 1},
	{0, -1, 1, 0},
	{0, 1, 1, 0},
	{1, 0, 0, 1},
}

// octantOwnsEdges reports whether octant o owns its shared boundary rows
// (the cardinal row y==0 and the diagonal row y==x). Octants 0, 2, 4, 6
// own them; 1, 3, 5, 7 suppress emission on those rows since the owning
// neighbor octant already emitted them.
func octantOwnsEdges(o int) bool {
	return o%2 == 0
}

// View is a reusable field-of-view computation bound to a map, origin,
// radius, and shape. Call Iterator to walk its emissions.
type View struct {
	m      Map
	origin geom.Pos
	radius int
	shape  Shape
}

// NewView constructs a View. No work happens until Iterator is called.
func NewView(m Map, origin geom.Pos, radius int, shape Shape) *View {
	return &View{m: m, origin: origin, radius: radius, shape: shape}
}

// Iterator returns a fresh, resumable iterator over this View's emissions.
// Multiple independent iterators may be created from the same View; each
// owns its own working state.
func (v *View) Iterator() *Iterator {
	it := &Iterator{
		m:      v.m,
		origin: v.origin,
		radius: v.radius,
	}
	it.circleBoundSq = (2*v.radius + 1) * (2*v.radius + 1)
	if v.radius == 0 {
		it.octant = 8 // nothing to do past the origin emission
	} else {
		it.resetOctant()
	}
	return it
}

// Iterator is the resumable state machine driving shadow casting. Its
// complete state is the tuple (octant, column, sight index, y) plus the
// two alternating sight lists and the working sub-sight — nothing else.
type Iterator struct {
	m      Map
	origin geom.Pos
	radius int

	circleBoundSq int // (2r+1)^2, precomputed once

	originEmitted bool

	octant int // 0..7, or 8 when exhausted

	bufA, bufB   []sight // the two alternating backing arrays
	current, next []sight

	x       int
	sightIdx int
	needBegin bool

	activeSight sight
	y, yHigh    int

	subOpen bool
	subLow  slope
}

// Next advances the iterator by bounded work and returns the next
// emission, or ok=false once the sequence is exhausted.
func (it *Iterator) Next() (Tile, bool) {
	if !it.originEmitted {
		it.originEmitted = true
		return Tile{X: it.origin.X, Y: it.origin.Y, Symmetric: true}, true
	}

	for {
		if it.octant >= 8 {
			return Tile{}, false
		}
		if it.x > it.radius {
			it.octant++
			if it.octant < 8 {
				it.resetOctant()
			}
			continue
		}
		if it.sightIdx >= len(it.current) {
			it.current, it.next = it.next, it.current[:0]
			it.x++
			it.sightIdx = 0
			it.needBegin = true
			continue
		}
		if it.needBegin {
			it.beginSight()
			it.needBegin = false
		}
		if it.y > it.yHigh {
			if it.subOpen {
				it.next = append(it.next, sight{low: it.subLow, high: it.activeSight.high})
				it.subOpen = false
			}
			it.sightIdx++
			it.needBegin = true
			continue
		}

		tile, emit := it.processTile()
		it.y++
		if emit {
			return tile, true
		}
	}
}

// resetOctant starts a fresh octant: the column count resets to 1 and the
// current sight list is seeded with the full octant wedge [0/1, 1/1].
func (it *Iterator) resetOctant() {
	it.x = 1
	it.sightIdx = 0
	it.needBegin = true

	it.bufA = it.bufA[:0]
	it.bufA = append(it.bufA, sight{low: slope{0, 1}, high: slope{1, 1}})
	it.bufB = it.bufB[:0]
	it.current = it.bufA
	it.next = it.bufB
}

// beginSight loads the active sight for it.sightIdx and computes its y
// range at the current column.
func (it *Iterator) beginSight() {
	if it.sightIdx >= len(it.current) {
		return
	}
	s := it.current[it.sightIdx]
	if s.degenerate() {
		// Prevented by construction; treat as an empty range if ever hit.
		it.activeSight = s
		it.y, it.yHigh = 1, 0
		it.subOpen = false
		return
	}
	it.activeSight = s
	it.y, it.yHigh = s.rowBounds(it.x)
	it.subOpen = false
}

// processTile evaluates the single tile at (it.x, it.y) within the active
// sight: shape clipping, map transform, occlusion bookkeeping, and the
// symmetric-visibility test.
func (it *Iterator) processTile() (Tile, bool) {
	x, y := it.x, it.y

	if 4*(x*x+y*y) > it.circleBoundSq {
		return Tile{}, false
	}

	mm := octantMult[it.octant]
	mx := it.origin.X + x*mm[0] + y*mm[1]
	my := it.origin.Y + x*mm[2] + y*mm[3]

	inBounds := it.m.InBounds(mx, my)
	opaque := true
	if inBounds {
		opaque = it.m.IsOpaque(mx, my)
	}

	mid := slope{rise: 2 * y, run: 2 * x}
	symmetric := it.activeSight.contains(mid)

	suppress := !octantOwnsEdges(it.octant) && (y == 0 || y == x)

	var tile Tile
	emit := false
	if inBounds && !suppress {
		tile = Tile{X: mx, Y: my, Symmetric: symmetric}
		emit = true
	}

	// A diamond wall blocks every ray crossing this column within half a
	// tile of its center, so sub-sights are closed and opened at the tile's
	// lower mid-edge rather than at its center.
	lowMid := slope{rise: 2*y - 1, run: 2 * x}
	if opaque {
		if it.subOpen {
			it.next = append(it.next, sight{low: it.subLow, high: lowMid})
			it.subOpen = false
		}
	} else if !it.subOpen {
		it.subLow = maxSlope(lowMid, it.activeSight.low)
		it.subOpen = true
	}

	return tile, emit
}

// Bitmap is a square, origin-centered snapshot of visibility, suitable for
// the "is this tile currently visible to me" query a viewing entity owns.
// It is computed eagerly from a View's full emission sequence; consumers
// that only need the live sequence should use View.Iterator directly.
type Bitmap struct {
	origin geom.Pos
	radius int
	// visible[i] is true if the tile at the i-th offset (see index) was
	// emitted at all (symmetric or not); symmetric[i] additionally records
	// whether it was emitted with Symmetric == true.
	visible  []bool
	symmetric []bool
}

// Compute runs the full shadow-casting sequence for v and returns a Bitmap
// snapshot. Intended to be called once per turn (or on origin/map change),
// not per frame.
func Compute(v *View) *Bitmap {
	side := 2*v.radius + 1
	b := &Bitmap{
		origin:    v.origin,
		radius:    v.radius,
		visible:   make([]bool, side*side),
		symmetric: make([]bool, side*side),
	}
	it := v.Iterator()
	for {
		tile, ok := it.Next()
		if !ok {
			break
		}
		if i, inRange := b.index(tile.X, tile.Y); inRange {
			b.visible[i] = true
			b.symmetric[i] = tile.Symmetric
		}
	}
	return b
}

func (b *Bitmap) index(x, y int) (int, bool) {
	dx := x - b.origin.X + b.radius
	dy := y - b.origin.Y + b.radius
	side := 2*b.radius + 1
	if dx < 0 || dx >= side || dy < 0 || dy >= side {
		return 0, false
	}
	return dy*side + dx, true
}

// IsVisible reports whether (x, y) was reached by the shadow cast,
// symmetrically or not (i.e. it would be drawn on screen). Out-of-range
// coordinates are never visible.
func (b *Bitmap) IsVisible(x, y int) bool {
	i, ok := b.index(x, y)
	return ok && b.visible[i]
}

// IsSymmetric reports whether (x, y) is symmetrically visible. False for
// tiles outside the bitmap, never-visited tiles, and asymmetrically-seen
// walls.
func (b *Bitmap) IsSymmetric(x, y int) bool {
	i, ok := b.index(x, y)
	return ok && b.symmetric[i]
}

// Radius returns the radius this bitmap was computed with.
func (b *Bitmap) Radius() int { return b.radius }

// Origin returns the map position this bitmap is centered on.
func (b *Bitmap) Origin() geom.Pos { return b.origin }
