package tile

// RawGrid is the logical w x h cell buffer behind a TileGrid: a front
// array (the state drawers are writing this frame) and a back array (the
// state as of the end of the previous render), addressed through a
// wrapped offset so that a drawer can shift the whole grid's apparent
// origin without touching storage. Dirty tracks whether front and back
// currently differ anywhere.
type RawGrid struct {
	w, h   int
	front  []Cell
	back   []Cell
	dirty  bool
	ox, oy int
}

// NewRawGrid creates a w x h grid filled with BlankCell.
func NewRawGrid(w, h int) *RawGrid {
	g := &RawGrid{
		w:     w,
		h:     h,
		front: make([]Cell, w*h),
		back:  make([]Cell, w*h),
	}
	for i := range g.front {
		g.front[i] = BlankCell
		g.back[i] = BlankCell
	}
	return g
}

// Width and Height report the grid's logical dimensions.
func (g *RawGrid) Width() int  { return g.w }
func (g *RawGrid) Height() int { return g.h }

// Dirty reports whether any front cell currently differs from back.
func (g *RawGrid) Dirty() bool { return g.dirty }

// DrawOffset returns the current wrapped-offset pair.
func (g *RawGrid) DrawOffset() (ox, oy int) { return g.ox, g.oy }

// SetDrawOffset changes the wrapped offset. Drawers set this once at the
// start of a frame's drawing and address logical coordinates thereafter
// without needing to think about it again; Display undoes the wrap.
func (g *RawGrid) SetDrawOffset(ox, oy int) {
	g.ox = ox
	g.oy = oy
}

// index computes the wrapped-offset storage index for logical (x, y), per
// the formula in the data model: ((y+oy) mod h)*w + ((x+ox) mod w).
func (g *RawGrid) index(x, y int) int {
	row := mod(y+g.oy, g.h)
	col := mod(x+g.ox, g.w)
	return row*g.w + col
}

// mod is Euclidean modulo: unlike Go's %, it never returns a negative
// result, which wrapped-offset addressing depends on for offsets that
// scroll past zero in either direction.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// inBounds reports whether logical (x, y) falls within the grid.
func (g *RawGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Set writes a cell at logical (x, y). Out-of-bounds writes are a no-op.
// Marks the grid dirty iff the new value differs from the stored front
// value.
func (g *RawGrid) Set(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	i := g.index(x, y)
	if g.front[i] == c {
		return
	}
	g.front[i] = c
	g.dirty = true
}

// At returns the front cell currently stored at logical (x, y).
func (g *RawGrid) At(x, y int) Cell {
	if !g.inBounds(x, y) {
		return BlankCell
	}
	return g.front[g.index(x, y)]
}

// Print writes a row of cells starting at (x, y), one per rune of text,
// sharing fg/bg. Writes that fall off the right edge of the grid are
// dropped rather than wrapping to the next row.
func (g *RawGrid) Print(x, y int, text string, fg, bg Color) {
	col := x
	for _, r := range text {
		g.Set(col, y, Cell{Symbol: Char(r), FG: fg, BG: bg})
		col++
	}
}

// Changed reports whether the front cell at (x, y) differs from the back
// cell at the same logical address. Used by Render to decide which cells
// need repainting into the pixel buffer.
func (g *RawGrid) Changed(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	i := g.index(x, y)
	return g.front[i] != g.back[i]
}

// SwapFrontBack copies front into back and clears the dirty flag. Called
// at the end of a render pass once every changed cell has been painted.
func (g *RawGrid) SwapFrontBack() {
	copy(g.back, g.front)
	g.dirty = false
}
