package tile

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TileGridView describes how a TileGrid's pixels are composed onto the
// output canvas: screen position, visible size in cells, a color
// modulator (used to dim inactive layers), and an integer zoom factor. It
// also holds an optional clip rectangle, which Display does not apply.
type TileGridView struct {
	PX, PY     int
	VW, VH     int
	Clip       *image.Rectangle
	Modulator  Color
	ModAlpha   float32 // 1 = no dim, 0 = fully dimmed
	Zoom       int
	clipActive bool
}

// NewTileGridView returns a view showing the full vw x vh cell area at
// (px, py) with no dimming and 1x zoom.
func NewTileGridView(px, py, vw, vh int) TileGridView {
	return TileGridView{PX: px, PY: py, VW: vw, VH: vh, Modulator: White, ModAlpha: 1, Zoom: 1}
}

// TileGrid ties a RawGrid's logical cell storage to a Tileset and a GPU
// texture, and exposes the draw -> render -> upload -> display pipeline:
// drawers call Set/Print/SetDrawOffset against the grid; Render repaints
// only cells that changed since the last render into a CPU-side pixel
// buffer; Upload copies that buffer to the GPU texture on change; Display
// composes the texture onto an output canvas, undoing the wrapped offset
// by splitting into up to four blits.
type TileGrid struct {
	grid    *RawGrid
	tileset *Tileset

	pixels  *ebiten.Image // CPU-equivalent staging canvas, w*tw x h*th
	texture *ebiten.Image // GPU-presented texture, same size

	view TileGridView

	cellsDirty   bool
	textureDirty bool
	viewDirty    bool
}

// NewTileGrid creates a w x h cell grid rendered with ts.
func NewTileGrid(w, h int, ts *Tileset) *TileGrid {
	tw, th := ts.TileSize()
	pw, ph := w*tw, h*th
	tg := &TileGrid{
		grid:         NewRawGrid(w, h),
		tileset:      ts,
		pixels:       ebiten.NewImage(pw, ph),
		texture:      ebiten.NewImage(pw, ph),
		view:         NewTileGridView(0, 0, w, h),
		cellsDirty:   true,
		textureDirty: true,
	}
	// Make every back cell differ from front so the first Render paints
	// the whole pixel buffer.
	for i := range tg.grid.back {
		tg.grid.back[i] = Cell{}
	}
	tg.grid.dirty = true
	return tg
}

// Grid exposes the underlying RawGrid for direct inspection (tests,
// chunked-map integration).
func (tg *TileGrid) Grid() *RawGrid { return tg.grid }

// --- Draw phase ---

// Set writes a single cell. See RawGrid.Set.
func (tg *TileGrid) Set(x, y int, c Cell) {
	tg.grid.Set(x, y, c)
	if tg.grid.Dirty() {
		tg.cellsDirty = true
	}
}

// Print writes a row of cells. See RawGrid.Print.
func (tg *TileGrid) Print(x, y int, text string, fg, bg Color) {
	tg.grid.Print(x, y, text, fg, bg)
	if tg.grid.Dirty() {
		tg.cellsDirty = true
	}
}

// SetDrawOffset changes the wrapped draw offset. Display uses the new
// offset on its next call; no re-render is needed since Render operates
// in storage space, oblivious to the offset.
func (tg *TileGrid) SetDrawOffset(ox, oy int) {
	tg.grid.SetDrawOffset(ox, oy)
	tg.viewDirty = true
}

// SetTileset replaces the active tileset and forces a full repaint, since
// every cell's pixels depend on the glyph atlas in use.
func (tg *TileGrid) SetTileset(ts *Tileset) {
	tg.tileset = ts
	tg.cellsDirty = true
	for i := range tg.grid.back {
		tg.grid.back[i] = Cell{} // force every cell to look "changed"
	}
}

// View returns the current TileGridView.
func (tg *TileGrid) View() TileGridView { return tg.view }

// SetView replaces the TileGridView wholesale (e.g. on window resize).
func (tg *TileGrid) SetView(v TileGridView) {
	tg.view = v
	tg.viewDirty = true
}

// --- Render phase ---

// Render repaints, into the CPU-equivalent pixel buffer, every storage
// cell whose front value differs from its back value, then swaps
// front/back and marks the texture dirty. A no-op if nothing changed
// since the last render.
func (tg *TileGrid) Render() {
	if !tg.cellsDirty {
		return
	}
	tw, th := tg.tileset.TileSize()
	w := tg.grid.w
	for i, c := range tg.grid.front {
		if c == tg.grid.back[i] {
			continue
		}
		row, col := i/w, i%w
		tg.tileset.DrawTileTo(tg.pixels, col*tw, row*th, c.Symbol, c.FG, c.BG)
	}
	tg.grid.SwapFrontBack()
	tg.cellsDirty = false
	tg.textureDirty = true
}

// --- Upload phase ---

// Upload copies the pixel buffer into the GPU texture if it changed since
// the last upload. If the texture was lost (render-device-reset), the
// caller should reconstruct TileGrid and call Render with mark_all_dirty
// semantics (grid comes up fully dirty by construction) so the next
// Upload re-sends the whole buffer.
func (tg *TileGrid) Upload() {
	if !tg.textureDirty {
		return
	}
	tg.texture.Clear()
	tg.texture.DrawImage(tg.pixels, nil)
	tg.textureDirty = false
}

// --- Display phase ---

// Display composes the texture onto dst using the current TileGridView
// and draw-offset, splitting the blit at the wrapped-offset seam so that
// what the drawer wrote at logical (x, y) appears contiguously at the
// view's screen position regardless of the offset.
func (tg *TileGrid) Display(dst *ebiten.Image) {
	tw, th := tg.tileset.TileSize()
	w, h := tg.grid.w, tg.grid.h
	ox, oy := tg.grid.DrawOffset()
	ox = mod(ox, w)
	oy = mod(oy, h)

	zoom := tg.view.Zoom
	if zoom < 1 {
		zoom = 1
	}

	for _, xr := range splitRange(ox, w, tg.view.VW) {
		for _, yr := range splitRange(oy, h, tg.view.VH) {
			srcRect := image.Rect(xr.srcStart*tw, yr.srcStart*th, (xr.srcStart+xr.length)*tw, (yr.srcStart+yr.length)*th)
			sub := tg.texture.SubImage(srcRect).(*ebiten.Image)

			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Scale(float64(zoom), float64(zoom))
			dstX := tg.view.PX + xr.dstStart*tw*zoom
			dstY := tg.view.PY + yr.dstStart*th*zoom
			opts.GeoM.Translate(float64(dstX), float64(dstY))
			opts.ColorScale.Scale(
				float32(tg.view.Modulator.R)/255,
				float32(tg.view.Modulator.G)/255,
				float32(tg.view.Modulator.B)/255,
				tg.view.ModAlpha,
			)
			dst.DrawImage(sub, opts)
		}
	}
	tg.viewDirty = false
}

// blitRange is one axis-aligned piece of a wrapped-offset display blit:
// copy `length` tiles starting at storage index `srcStart` to screen
// tile-column/row `dstStart`.
type blitRange struct {
	srcStart, dstStart, length int
}

// splitRange computes the 1 or 2 blitRanges needed to present `visible`
// tiles of a `total`-wide wrapped storage axis starting at offset off, so
// that storage index off lands at screen position 0.
func splitRange(off, total, visible int) []blitRange {
	if visible > total {
		visible = total
	}
	if off == 0 {
		return []blitRange{{srcStart: 0, dstStart: 0, length: visible}}
	}
	firstLen := total - off
	if firstLen >= visible {
		return []blitRange{{srcStart: off, dstStart: 0, length: visible}}
	}
	secondLen := visible - firstLen
	return []blitRange{
		{srcStart: off, dstStart: 0, length: firstLen},
		{srcStart: 0, dstStart: firstLen, length: secondLen},
	}
}
