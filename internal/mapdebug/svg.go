// Package mapdebug renders a map snapshot to SVG for offline inspection:
// opaque tiles, the player's FOV bitmap, and the chunked map grid's
// current dirty-chunk set, all overlaid on one picture. It has no
// runtime role; it exists purely as a developer diagnostic invoked from
// the CLI's -dump-svg flag.
package mapdebug

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/rugg/ruggrogue/internal/chunk"
	"github.com/rugg/ruggrogue/internal/fov"
)

// MapSource answers the per-tile queries needed to render a snapshot.
// worldmap.Map satisfies this directly.
type MapSource interface {
	Width() int
	Height() int
	IsOpaque(x, y int) bool
}

// Options configures the SVG dump.
type Options struct {
	CellSize int // pixels per map tile, default 12
	Title    string
}

// DefaultOptions returns sensible dump defaults.
func DefaultOptions() Options {
	return Options{CellSize: 12, Title: "map debug dump"}
}

// Dump renders m to an SVG byte slice. visible, if non-nil, overlays the
// FOV bitmap: symmetric tiles are tinted bright, asymmetric (wall-only)
// tiles dim. dirty, if non-nil, outlines the map-space rectangle of the
// MapChunk each dirty chunk shows.
func Dump(m MapSource, visible *fov.Bitmap, dirty []chunk.DirtyChunk, opts Options) []byte {
	if opts.CellSize <= 0 {
		opts.CellSize = 12
	}
	cs := opts.CellSize
	w, h := m.Width(), m.Height()

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(w*cs, h*cs+30)
	canvas.Rect(0, 0, w*cs, h*cs+30, "fill:#0b0b12")

	if opts.Title != "" {
		canvas.Text(w*cs/2, 20, opts.Title, "text-anchor:middle;font-size:14px;fill:#e2e8f0;font-family:monospace")
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fill := "#1f2937" // passable
			if m.IsOpaque(x, y) {
				fill = "#4b5563" // wall
			}
			if visible != nil {
				if visible.IsVisible(x, y) {
					if visible.IsSymmetric(x, y) {
						fill = "#fbbf24"
					} else {
						fill = "#92400e"
					}
				}
			}
			canvas.Rect(x*cs, 30+y*cs, cs, cs, fmt.Sprintf("fill:%s;stroke:#000;stroke-width:0.5", fill))
		}
	}

	for _, d := range dirty {
		rx := d.MapChunk.CX * chunk.Size * cs
		ry := 30 + d.MapChunk.CY*chunk.Size*cs
		canvas.Rect(rx, ry, chunk.Size*cs, chunk.Size*cs, "fill:none;stroke:#ef4444;stroke-width:2")
	}

	canvas.End()
	return buf.Bytes()
}

// SaveToFile renders m to path as an SVG file (0644 permissions).
func SaveToFile(m MapSource, visible *fov.Bitmap, dirty []chunk.DirtyChunk, path string, opts Options) error {
	data := Dump(m, visible, dirty, opts)
	return os.WriteFile(path, data, 0o644)
}
