package astar

import (
	"testing"

	"github.com/rugg/ruggrogue/internal/geom"
	"pgregory.net/rapid"
)

type openMap struct {
	w, h    int
	blocked map[geom.Pos]bool
}

func newOpenMap(w, h int) *openMap {
	return &openMap{w: w, h: h, blocked: make(map[geom.Pos]bool)}
}

func (m *openMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.w && y >= 0 && y < m.h
}

func (m *openMap) IsBlocked(x, y int) bool {
	return m.blocked[geom.Pos{X: x, Y: y}]
}

func (m *openMap) block(x, y int) {
	m.blocked[geom.Pos{X: x, Y: y}] = true
}

func TestAxisAlignedTail(t *testing.T) {
	m := newOpenMap(10, 10)
	src := geom.Pos{X: 0, Y: 0}
	dst := geom.Pos{X: 9, Y: 4}

	path := FindPath(m, src, dst, 0, false)
	if path.Empty() {
		t.Fatal("expected a path on an open map")
	}
	if path.Len() != 10 {
		t.Fatalf("path length = %d, want 10", path.Len())
	}
	if path.At(0) != src {
		t.Fatalf("first step = %+v, want src %+v", path.At(0), src)
	}
	if path.At(path.Len()-1) != dst {
		t.Fatalf("last step = %+v, want dst %+v", path.At(path.Len()-1), dst)
	}

	prevX := path.At(0).X
	for i := 1; i < path.Len(); i++ {
		if path.At(i).X < prevX {
			t.Fatalf("path is not monotonically non-decreasing in x at step %d", i)
		}
		prevX = path.At(i).X
	}

	// Last five moves should be purely cardinal (constant y, x stepping).
	tailStart := path.Len() - 6
	y := path.At(tailStart).Y
	for i := tailStart; i < path.Len(); i++ {
		if path.At(i).Y != y {
			t.Fatalf("step %d: y=%d, want constant %d in cardinal tail", i, path.At(i).Y, y)
		}
	}
}

func TestFallbackWhenWalledOff(t *testing.T) {
	m := newOpenMap(10, 10)
	dst := geom.Pos{X: 5, Y: 5}
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if abs(x-dst.X) <= 1 && abs(y-dst.Y) <= 1 && (x != dst.X || y != dst.Y) {
				m.block(x, y)
			}
		}
	}

	src := geom.Pos{X: 0, Y: 0}
	path := FindPath(m, src, dst, 0, true)
	if path.Empty() {
		t.Fatal("fallback path should be non-empty")
	}
	if path.At(0) != src {
		t.Fatalf("fallback path must start at src, got %+v", path.At(0))
	}
	for i := 0; i < path.Len(); i++ {
		p := path.At(i)
		if p != dst && m.IsBlocked(p.X, p.Y) {
			t.Fatalf("fallback path steps on blocked tile %+v", p)
		}
	}
}

func TestNoFallbackEmptyWhenUnreachable(t *testing.T) {
	m := newOpenMap(10, 10)
	dst := geom.Pos{X: 5, Y: 5}
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if abs(x-dst.X) <= 1 && abs(y-dst.Y) <= 1 && (x != dst.X || y != dst.Y) {
				m.block(x, y)
			}
		}
	}
	path := FindPath(m, geom.Pos{X: 0, Y: 0}, dst, 0, false)
	if !path.Empty() {
		t.Fatalf("expected empty path, got %d steps", path.Len())
	}
}

func TestConnectedness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(5, 15).Draw(rt, "size")
		m := newOpenMap(size, size)

		nBlocks := rapid.IntRange(0, size*size/5).Draw(rt, "nBlocks")
		for i := 0; i < nBlocks; i++ {
			x := rapid.IntRange(0, size-1).Draw(rt, "bx")
			y := rapid.IntRange(0, size-1).Draw(rt, "by")
			m.block(x, y)
		}

		sx := rapid.IntRange(0, size-1).Draw(rt, "sx")
		sy := rapid.IntRange(0, size-1).Draw(rt, "sy")
		dx := rapid.IntRange(0, size-1).Draw(rt, "dx")
		dy := rapid.IntRange(0, size-1).Draw(rt, "dy")
		src := geom.Pos{X: sx, Y: sy}
		dst := geom.Pos{X: dx, Y: dy}
		if m.IsBlocked(sx, sy) {
			return
		}

		path := FindPath(m, src, dst, 1, true)
		if path.Empty() {
			return
		}
		if path.At(0) != src {
			rt.Fatalf("first step %+v != src %+v", path.At(0), src)
		}
		for i := 1; i < path.Len(); i++ {
			a, b := path.At(i-1), path.At(i)
			if abs(a.X-b.X) > 1 || abs(a.Y-b.Y) > 1 {
				rt.Fatalf("steps %+v -> %+v are not 8-neighbors", a, b)
			}
		}
	})
}

func TestStepIterLazy(t *testing.T) {
	m := newOpenMap(5, 5)
	path := FindPath(m, geom.Pos{X: 0, Y: 0}, geom.Pos{X: 4, Y: 4}, 0, false)
	it := path.Steps()
	first, ok := it.Next()
	if !ok || first != (geom.Pos{X: 0, Y: 0}) {
		t.Fatalf("first step = %+v, ok=%v", first, ok)
	}
	count := 1
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	if count != path.Len() {
		t.Fatalf("iterated %d steps, want %d", count, path.Len())
	}
}
