package fov

import (
	"testing"

	"github.com/rugg/ruggrogue/internal/geom"
	"pgregory.net/rapid"
)

// gridMap is a minimal rectangular Map for tests: true entries are opaque.
type gridMap struct {
	w, h   int
	opaque map[geom.Pos]bool
}

func newGridMap(w, h int) *gridMap {
	return &gridMap{w: w, h: h, opaque: make(map[geom.Pos]bool)}
}

func (g *gridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *gridMap) IsOpaque(x, y int) bool {
	return g.opaque[geom.Pos{X: x, Y: y}]
}

func (g *gridMap) setWall(x, y int) {
	g.opaque[geom.Pos{X: x, Y: y}] = true
}

func collect(m Map, origin geom.Pos, radius int) []Tile {
	it := NewView(m, origin, radius, CirclePlus).Iterator()
	var out []Tile
	for {
		tile, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, tile)
	}
	return out
}

func TestOriginFirstAndSymmetric(t *testing.T) {
	m := newGridMap(5, 5)
	tiles := collect(m, geom.Pos{X: 2, Y: 2}, 3)
	if len(tiles) == 0 {
		t.Fatal("expected at least one emission")
	}
	first := tiles[0]
	if first.X != 2 || first.Y != 2 || !first.Symmetric {
		t.Fatalf("first emission = %+v, want origin symmetric", first)
	}
}

func TestRadiusZeroOnlyOrigin(t *testing.T) {
	m := newGridMap(5, 5)
	tiles := collect(m, geom.Pos{X: 2, Y: 2}, 0)
	if len(tiles) != 1 {
		t.Fatalf("radius 0: got %d emissions, want 1", len(tiles))
	}
}

func TestRadiusBound(t *testing.T) {
	m := newGridMap(21, 21)
	origin := geom.Pos{X: 10, Y: 10}
	radius := 4
	bound := (2*radius + 1) * (2*radius + 1)
	for _, tile := range collect(m, origin, radius) {
		dx := tile.X - origin.X
		dy := tile.Y - origin.Y
		if 4*(dx*dx+dy*dy) > bound {
			t.Fatalf("tile %+v exceeds radius bound", tile)
		}
	}
}

// TestPillarScenario reproduces §8 scenario 1: a 5x5 map, opaque at (2,2),
// origin (0,2), radius 4.
func TestPillarScenario(t *testing.T) {
	m := newGridMap(5, 5)
	m.setWall(2, 2)

	tiles := collect(m, geom.Pos{X: 0, Y: 2}, 4)

	byPos := make(map[geom.Pos]Tile)
	for _, tl := range tiles {
		byPos[geom.Pos{X: tl.X, Y: tl.Y}] = tl
	}

	want := []struct {
		x, y int
		sym  bool
	}{
		{0, 2, true},
		{1, 2, true},
		{2, 2, true},
	}
	for _, w := range want {
		got, ok := byPos[geom.Pos{X: w.x, Y: w.y}]
		if !ok {
			t.Fatalf("expected tile (%d,%d) to be emitted", w.x, w.y)
		}
		if got.Symmetric != w.sym {
			t.Fatalf("tile (%d,%d) symmetric = %v, want %v", w.x, w.y, got.Symmetric, w.sym)
		}
	}

	for _, x := range []int{3, 4} {
		tl, ok := byPos[geom.Pos{X: x, Y: 2}]
		if !ok {
			t.Fatalf("expected tile (%d,2) behind the wall to be emitted asymmetrically", x)
		}
		if tl.Symmetric {
			t.Fatalf("tile (%d,2) behind the wall should not be symmetric", x)
		}
	}
}

// TestFullyOccludedNeverSymmetric covers the occlusion invariant: a sealed
// room's interior, two cells clear of any wall on every side, is never
// symmetrically visible from well outside the room.
func TestFullyOccludedNeverSymmetric(t *testing.T) {
	m := newGridMap(9, 9)
	// Ring walls at rows/cols 3 and 7, fully enclosing the 3x3 interior at
	// rows/cols 4-6.
	for x := 3; x <= 7; x++ {
		m.setWall(x, 3)
		m.setWall(x, 7)
	}
	for y := 3; y <= 7; y++ {
		m.setWall(3, y)
		m.setWall(7, y)
	}

	tiles := collect(m, geom.Pos{X: 0, Y: 0}, 12)
	for _, tl := range tiles {
		if tl.X == 5 && tl.Y == 5 && tl.Symmetric {
			t.Fatalf("sealed room center %+v should not be symmetric", tl)
		}
	}
}

// TestSymmetryProperty is the §8 FOV symmetry invariant, checked via
// randomized open maps (property-based, since hand enumeration of every
// pair is impractical).
func TestSymmetryProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(6, 12).Draw(rt, "size")
		m := newGridMap(size, size)

		nWalls := rapid.IntRange(0, size*size/4).Draw(rt, "nWalls")
		for i := 0; i < nWalls; i++ {
			x := rapid.IntRange(0, size-1).Draw(rt, "wx")
			y := rapid.IntRange(0, size-1).Draw(rt, "wy")
			m.setWall(x, y)
		}

		ax := rapid.IntRange(0, size-1).Draw(rt, "ax")
		ay := rapid.IntRange(0, size-1).Draw(rt, "ay")
		bx := rapid.IntRange(0, size-1).Draw(rt, "bx")
		by := rapid.IntRange(0, size-1).Draw(rt, "by")

		if m.IsOpaque(ax, ay) || m.IsOpaque(bx, by) {
			return // only passable-to-passable symmetry is asserted
		}

		radius := size * 2 // large enough to cover the whole map

		fromA := Compute(NewView(m, geom.Pos{X: ax, Y: ay}, radius, CirclePlus))
		fromB := Compute(NewView(m, geom.Pos{X: bx, Y: by}, radius, CirclePlus))

		dx, dy := bx-ax, by-ay
		bound := (2*radius + 1) * (2*radius + 1)
		if 4*(dx*dx+dy*dy) > bound {
			return
		}

		symAB := fromA.IsSymmetric(bx, by)
		symBA := fromB.IsSymmetric(ax, ay)
		if symAB != symBA {
			rt.Fatalf("asymmetric result: A(%d,%d)->B(%d,%d) = %v, B->A = %v",
				ax, ay, bx, by, symAB, symBA)
		}
	})
}

func TestBitmapIndexOutOfRange(t *testing.T) {
	m := newGridMap(5, 5)
	b := Compute(NewView(m, geom.Pos{X: 2, Y: 2}, 1, CirclePlus))
	if b.IsVisible(100, 100) {
		t.Fatal("far-away coordinate should not be visible")
	}
}
