package chunk

import (
	"testing"

	"github.com/rugg/ruggrogue/internal/geom"
)

func TestMarkDirtyOnlyAffectsOwningChunk(t *testing.T) {
	// 40x30 screen in tiles, chunk size 8.
	g := NewGrid(320, 240, 8, 8) // screen in pixels, 8x8 tiles
	g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	g.Dirty() // drain the initial full-tiling dirty set

	g.MarkDirty(20, 15)

	dirty := g.Dirty()
	if len(dirty) != 1 {
		t.Fatalf("expected exactly 1 dirty screen chunk, got %d: %+v", len(dirty), dirty)
	}
	want := mapChunkOf(20, 15)
	if dirty[0].MapChunk != want {
		t.Fatalf("dirty chunk shows %+v, want %+v", dirty[0].MapChunk, want)
	}
}

func TestDirtyClearsFlagsAfterReading(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	g.MarkDirty(20, 15)

	first := g.Dirty()
	if len(first) == 0 {
		t.Fatal("expected at least one dirty chunk on first read")
	}
	second := g.Dirty()
	if len(second) != 0 {
		t.Fatalf("expected no dirty chunks on second read, got %d", len(second))
	}
}

func TestStationaryCameraProducesNoRetileChurn(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	g.Dirty() // drain the initial full-tiling dirty set

	g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	if dirty := g.Dirty(); len(dirty) != 0 {
		t.Fatalf("retiling with an unmoved camera should mark nothing dirty, got %d", len(dirty))
	}
}

func TestCameraMoveMarksNewlyEnteredChunksDirty(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	g.Dirty()

	g.Retile(geom.Pos{X: 28, Y: 15}, 40, 30)
	if dirty := g.Dirty(); len(dirty) == 0 {
		t.Fatal("moving the camera across a chunk boundary should dirty at least one chunk")
	}
}

func TestMarkAllDirtyMarksEveryTiledChunk(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	topLeft := g.Retile(geom.Pos{X: 20, Y: 15}, 40, 30)
	g.Dirty()

	g.MarkAllDirty()
	dirty := g.Dirty()
	if len(dirty) != g.cols*g.rows {
		t.Fatalf("expected all %d chunks dirty, got %d", g.cols*g.rows, len(dirty))
	}
	_ = topLeft
}

func TestAnimateWithNoScrollReturnsCameraUnchanged(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	pos := geom.Pos{X: 20, Y: 15}
	got, animating := g.Animate(pos, 1.0/60.0)
	if animating {
		t.Fatal("Animate should report no animation in flight without a ScrollTo")
	}
	if got != pos {
		t.Fatalf("Animate = %+v, want unchanged %+v", got, pos)
	}
}

func TestScrollToEasesTowardTargetThenCompletes(t *testing.T) {
	g := NewGrid(320, 240, 8, 8)
	g.Retile(geom.Pos{X: 0, Y: 0}, 40, 30)

	target := geom.Pos{X: 20, Y: 0}
	g.ScrollTo(target, 1.0)

	mid, animating := g.Animate(target, 0.5)
	if !animating {
		t.Fatal("Animate should still be in flight halfway through the duration")
	}
	if mid.X <= 0 || mid.X >= target.X {
		t.Fatalf("midpoint camera X = %d, want strictly between 0 and %d", mid.X, target.X)
	}

	final, animating := g.Animate(target, 1.0)
	if animating {
		t.Fatal("Animate should report completion once both tweens finish")
	}
	if final != target {
		t.Fatalf("final camera = %+v, want target %+v", final, target)
	}

	// A finished scroll stays finished: further Animate calls are no-ops.
	again, animating := g.Animate(target, 1.0/60.0)
	if animating || again != target {
		t.Fatalf("Animate after completion = %+v, animating=%v; want %+v, false", again, animating, target)
	}
}

func TestFloorDivNegative(t *testing.T) {
	if got := floorDiv(-1, 8); got != -1 {
		t.Fatalf("floorDiv(-1,8) = %d, want -1", got)
	}
	if got := floorDiv(-8, 8); got != -1 {
		t.Fatalf("floorDiv(-8,8) = %d, want -1", got)
	}
	if got := floorDiv(-9, 8); got != -2 {
		t.Fatalf("floorDiv(-9,8) = %d, want -2", got)
	}
}
