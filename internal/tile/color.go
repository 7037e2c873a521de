// Package tile implements the CPU-side cell buffer, glyph/sprite atlas, and
// draw->render->upload->display pipeline that together form the tile-grid
// renderer: RawGrid (wrapped-offset cell storage with dirty tracking),
// Tileset (a grayscale glyph atlas recolored at blit time), and TileGrid
// (the pipeline that ties them to a GPU texture and an on-screen view).
package tile

// Color is an 8-bit-per-channel RGB triple. There is no alpha channel —
// transparency is a property of the tileset source image, not of cells.
type Color struct {
	R, G, B uint8
}

// White is the default foreground used when a cell is never explicitly
// colored.
var White = Color{R: 255, G: 255, B: 255}

// Black is the default background.
var Black = Color{R: 0, G: 0, B: 0}
