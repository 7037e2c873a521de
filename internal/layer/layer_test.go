package layer

import (
	"image"
	"testing"

	"github.com/rugg/ruggrogue/internal/tile"
)

// testTileGrid builds a minimal real TileGrid (not a nil one, since
// Display calls View/SetView on the grids of dimmed layers) backed by a
// single blank glyph.
func testTileGrid(t *testing.T) *tile.TileGrid {
	t.Helper()
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	ts, err := tile.LoadTileset(src, 2, 2, map[rune]tile.SourceFrame{' ': {Col: 0, Row: 0}}, nil, ' ')
	if err != nil {
		t.Fatalf("LoadTileset: %v", err)
	}
	return tile.NewTileGrid(1, 1, ts)
}

func TestVisibleFromAllTransparentIsBottom(t *testing.T) {
	s := New()
	s.Push(&Layer{DrawsBehind: true})
	s.Push(&Layer{DrawsBehind: true})
	s.Push(&Layer{DrawsBehind: true})

	if got := s.visibleFrom(); got != 0 {
		t.Fatalf("visibleFrom = %d, want 0 when every layer draws behind", got)
	}
}

func TestVisibleFromStopsAtHighestOpaqueLayer(t *testing.T) {
	s := New()
	s.Push(&Layer{DrawsBehind: true})  // 0: map
	s.Push(&Layer{DrawsBehind: false}) // 1: opaque dialog
	s.Push(&Layer{DrawsBehind: true})  // 2: transparent overlay above it

	if got := s.visibleFrom(); got != 1 {
		t.Fatalf("visibleFrom = %d, want 1 (the highest opaque layer)", got)
	}
}

func TestDisplayOnlyVisitsVisibleLayers(t *testing.T) {
	s := New()
	s.Push(&Layer{DrawsBehind: true})
	s.Push(&Layer{DrawsBehind: false, Grids: make([]*tile.TileGrid, 2)})

	var visited int
	s.Display(func(g *tile.TileGrid) { visited++ })
	if visited != 2 {
		t.Fatalf("visited %d grids, want 2 (only the opaque top layer's)", visited)
	}
}

func TestDisplayDimsLayersBelowTopAndRestoresAfter(t *testing.T) {
	bottomGrid := testTileGrid(t)
	topGrid := testTileGrid(t)

	s := New()
	s.Push(&Layer{DrawsBehind: true, Grids: []*tile.TileGrid{bottomGrid}})
	s.Push(&Layer{DrawsBehind: false, Grids: []*tile.TileGrid{topGrid}})

	var bottomAlphaDuringDraw, topAlphaDuringDraw float32
	s.Display(func(g *tile.TileGrid) {
		if g == bottomGrid {
			bottomAlphaDuringDraw = g.View().ModAlpha
		}
		if g == topGrid {
			topAlphaDuringDraw = g.View().ModAlpha
		}
	})

	if bottomAlphaDuringDraw != dimAlpha {
		t.Fatalf("bottom layer ModAlpha during draw = %v, want dimAlpha %v", bottomAlphaDuringDraw, dimAlpha)
	}
	if topAlphaDuringDraw != 1 {
		t.Fatalf("top layer ModAlpha during draw = %v, want 1 (undimmed)", topAlphaDuringDraw)
	}
	if got := bottomGrid.View().ModAlpha; got != 1 {
		t.Fatalf("bottom layer ModAlpha after Display = %v, want restored to 1", got)
	}
}

type countingUpdater struct{ n int }

func (c *countingUpdater) Update(dt float64) { c.n++ }

func TestOnlyTopLayerReceivesUpdate(t *testing.T) {
	s := New()
	bottom := &countingUpdater{}
	top := &countingUpdater{}
	s.Push(&Layer{Updater: bottom})
	s.Push(&Layer{Updater: top})

	s.Update(0.016)

	if bottom.n != 0 {
		t.Fatal("bottom layer should not receive update calls")
	}
	if top.n != 1 {
		t.Fatal("top layer should receive exactly one update call")
	}
}

func TestPopOnEmptyStackIsNoOp(t *testing.T) {
	s := New()
	s.Pop()
	if s.Len() != 0 {
		t.Fatal("popping an empty stack should stay empty")
	}
}

func TestSwapReplacesTop(t *testing.T) {
	s := New()
	first := &Layer{DrawsBehind: true}
	second := &Layer{DrawsBehind: false}
	s.Push(first)
	s.Swap(second)

	if s.Len() != 1 {
		t.Fatalf("Swap should not grow the stack, len=%d", s.Len())
	}
	if s.Top() != second {
		t.Fatal("Swap should replace the top layer")
	}
}
