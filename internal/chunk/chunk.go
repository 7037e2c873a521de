// Package chunk implements dirty-rectangle map tiling: the map's TileGrid
// is subdivided into fixed C x C MapChunks, and the screen area devoted
// to the map is subdivided into ScreenChunks that each currently show one
// MapChunk. Only ScreenChunks whose MapChunk assignment changed (camera
// moved) or were explicitly marked dirty (a single tile changed) are
// redrawn, bounding per-frame map rendering to the player's local
// neighborhood plus newly-entered chunks.
package chunk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/rugg/ruggrogue/internal/geom"
)

// Size is the fixed side length of a MapChunk, C = 8 per the data model.
const Size = 8

// MapChunkCoord identifies a C x C region of the map by chunk indices
// (map tile coordinate / Size, floored).
type MapChunkCoord struct {
	CX, CY int
}

// mapChunkOf returns the MapChunkCoord containing map tile (x, y).
func mapChunkOf(x, y int) MapChunkCoord {
	return MapChunkCoord{CX: floorDiv(x, Size), CY: floorDiv(y, Size)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// screenChunk is (which MapChunk it currently shows, whether it needs a
// redraw), addressed in row-major order over the viewport's chunk grid.
type screenChunk struct {
	shows MapChunkCoord
	valid bool // false until a MapChunk has ever been assigned
	dirty bool
}

// Grid is the ChunkedMapGrid: a row-major array of ScreenChunks covering
// the screen area devoted to the map, plus enough margin to let the
// camera shift without forcing partial-chunk redraws at the edges.
type Grid struct {
	cols, rows int // in chunks
	screen     []screenChunk

	topLeftMapChunk MapChunkCoord // map chunk shown by screenChunk[0]
	camera          geom.Pos      // last camera position the tiling was computed for
	haveCamera      bool

	scroll *cameraScroll // active scroll-to animation, nil when idle
}

// cameraScroll holds the in-flight tweens of a camera scroll-to
// animation: the grid's displayed camera position eases toward a target
// centroid instead of snapping to it in a single frame.
type cameraScroll struct {
	tweenX, tweenY *gween.Tween
	doneX, doneY   bool
}

// NewGrid creates a chunk grid sized to cover a screenW x screenH pixel
// area (at tw x th pixels per map tile) plus one full chunk of margin on
// every side, per the "strict extra chunk margin" requirement.
func NewGrid(screenW, screenH, tw, th int) *Grid {
	visCols := ceilDiv(screenW, tw*Size)
	visRows := ceilDiv(screenH, th*Size)
	cols := visCols + 2 // one extra chunk margin each side
	rows := visRows + 2
	return &Grid{
		cols:   cols,
		rows:   rows,
		screen: make([]screenChunk, cols*rows),
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Cols and Rows report the chunk-grid's dimensions in chunks.
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Retile recomputes, for the given camera position (in map tile
// coordinates) and screen size in tiles, which MapChunk each ScreenChunk
// now shows. A ScreenChunk whose assignment changed is marked dirty.
// Returns the top-left map tile coordinate the caller should use as the
// TileGrid's draw-offset, tying this component into wrapped-offset
// rendering.
func (g *Grid) Retile(camera geom.Pos, screenTilesW, screenTilesH int) geom.Pos {
	// Top-left ScreenChunk's MapChunk: the chunk holding the camera minus
	// half the screen (in tiles), per the draw algorithm in the component
	// contract.
	halfColsInTiles := screenTilesW / 2
	halfRowsInTiles := screenTilesH / 2
	topLeftTileX := camera.X - halfColsInTiles
	topLeftTileY := camera.Y - halfRowsInTiles
	topLeft := mapChunkOf(topLeftTileX, topLeftTileY)

	if g.haveCamera && topLeft == g.topLeftMapChunk {
		// Nothing to retile; existing dirty flags (if any) stand.
		return geom.Pos{X: topLeft.CX * Size, Y: topLeft.CY * Size}
	}

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			want := MapChunkCoord{CX: topLeft.CX + col, CY: topLeft.CY + row}
			i := row*g.cols + col
			if !g.screen[i].valid || g.screen[i].shows != want {
				g.screen[i] = screenChunk{shows: want, valid: true, dirty: true}
			}
		}
	}
	g.topLeftMapChunk = topLeft
	g.camera = camera
	g.haveCamera = true
	return geom.Pos{X: topLeft.CX * Size, Y: topLeft.CY * Size}
}

// ScrollTo starts a camera scroll-to animation from the grid's current
// camera position to target over duration seconds, for a level transition
// where the camera should ease onto the new centroid instead of snapping
// to it in a single frame. Calling ScrollTo again replaces any animation
// already in flight.
func (g *Grid) ScrollTo(target geom.Pos, duration float32) {
	from := target
	if g.haveCamera {
		from = g.camera
	}
	g.scroll = &cameraScroll{
		tweenX: gween.New(float32(from.X), float32(target.X), duration, ease.OutCubic),
		tweenY: gween.New(float32(from.Y), float32(target.Y), duration, ease.OutCubic),
	}
}

// Animate advances any in-flight scroll-to animation by dt seconds and
// returns the camera position the caller should feed into Retile this
// frame, along with whether an animation is still running. With no
// animation in flight, it returns camera unchanged and false.
func (g *Grid) Animate(camera geom.Pos, dt float64) (geom.Pos, bool) {
	if g.scroll == nil {
		return camera, false
	}
	x := float32(camera.X)
	if !g.scroll.doneX {
		x, g.scroll.doneX = g.scroll.tweenX.Update(float32(dt))
	}
	y := float32(camera.Y)
	if !g.scroll.doneY {
		y, g.scroll.doneY = g.scroll.tweenY.Update(float32(dt))
	}
	pos := geom.Pos{X: int(x + 0.5), Y: int(y + 0.5)}
	if g.scroll.doneX && g.scroll.doneY {
		g.scroll = nil
		return pos, false
	}
	return pos, true
}

// MarkDirty marks the ScreenChunk currently showing the MapChunk that
// contains map tile (x, y), for single-tile changes such as the player's
// vacated cell on a move. No-op if no ScreenChunk currently shows that
// chunk (it is off the tiled area).
func (g *Grid) MarkDirty(x, y int) {
	target := mapChunkOf(x, y)
	for i := range g.screen {
		if g.screen[i].valid && g.screen[i].shows == target {
			g.screen[i].dirty = true
		}
	}
}

// MarkAllDirty marks every currently-tiled ScreenChunk dirty, for a map
// change (new level, map regeneration).
func (g *Grid) MarkAllDirty() {
	for i := range g.screen {
		if g.screen[i].valid {
			g.screen[i].dirty = true
		}
	}
}

// DirtyChunk is one ScreenChunk due for a redraw: its position in the
// screen chunk grid (in chunk units) and the MapChunk it should now draw
// from.
type DirtyChunk struct {
	ScreenCol, ScreenRow int
	MapChunk             MapChunkCoord
}

// Dirty returns every currently-dirty ScreenChunk and clears their dirty
// flags, as if they had just been redrawn. Called once per frame after
// Retile.
func (g *Grid) Dirty() []DirtyChunk {
	var out []DirtyChunk
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			i := row*g.cols + col
			if g.screen[i].valid && g.screen[i].dirty {
				out = append(out, DirtyChunk{ScreenCol: col, ScreenRow: row, MapChunk: g.screen[i].shows})
				g.screen[i].dirty = false
			}
		}
	}
	return out
}
