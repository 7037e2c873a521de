package tile

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// printableASCIIFirst..printableASCIILast is the glyph set a bundled font
// atlas covers: the
// printable range a roguelike's ASCII tileset actually needs, laid out
// left to right, top to bottom.
const printableASCIIFirst, printableASCIILast = 0x20, 0x7e

// GlyphFaceWidth and GlyphFaceHeight are the fixed cell size of the bundled
// basicfont face.
const GlyphFaceWidth, GlyphFaceHeight = 7, 13

// atlasColumns bounds each row of the generated atlas image.
const atlasColumns = 16

// GenerateASCIIAtlas rasterizes the printable ASCII range with the
// bundled golang.org/x/image/font/basicfont face into a single source
// image, alongside the SourceFrame char map LoadTileset expects. It lets
// the engine ship a usable glyph tileset with no external asset file.
func GenerateASCIIAtlas() (image.Image, map[rune]SourceFrame) {
	glyphs := make([]rune, 0, printableASCIILast-printableASCIIFirst+1)
	for r := rune(printableASCIIFirst); r <= printableASCIILast; r++ {
		glyphs = append(glyphs, r)
	}

	rows := (len(glyphs) + atlasColumns - 1) / atlasColumns
	img := image.NewRGBA(image.Rect(0, 0, atlasColumns*GlyphFaceWidth, rows*GlyphFaceHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	charMap := make(map[rune]SourceFrame, len(glyphs))
	face := basicfont.Face7x13

	for i, r := range glyphs {
		col, row := i%atlasColumns, i/atlasColumns
		charMap[r] = SourceFrame{Col: col, Row: row}

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.White),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.I(col * GlyphFaceWidth),
				Y: fixed.I(row*GlyphFaceHeight + face.Metrics().Ascent.Ceil()),
			},
		}
		d.DrawString(string(r))
	}

	return img, charMap
}
