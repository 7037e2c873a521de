package tile

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// globalDebug gates non-fatal warnings (missing glyph, unresolved symbol)
// the same way the rest of the engine gates verbose logging — silent by
// default, informative when the caller opts in.
var globalDebug bool

// SetDebug toggles tileset warning logging.
func SetDebug(enabled bool) { globalDebug = enabled }

// Tileset is an immutable glyph/sprite atlas: a source image cut into
// tw x th tiles, repacked one tile per column (top to bottom) so that a
// sequential blit pass has good cache locality, and stored as
// white-with-alpha-"grayness" so a later draw with a color multiplier
// recolors the glyph in place while the destination cell's background is
// painted separately.
type Tileset struct {
	tw, th int
	column *ebiten.Image // 1 tile wide, len(tiles)*th tall

	charIndex   map[rune]int
	symbolIndex map[int32]int
	fallback    rune
	tileCount   int
}

// SourceFrame locates one tw x th tile within the unprocessed source image,
// addressed in the source's own tile-grid coordinates.
type SourceFrame struct {
	Col, Row int
}

// LoadTileset cuts src into tw x th tiles, keeps only the tiles reachable
// through charMap or symbolMap, repacks them into a single column, and
// converts their pixels to grayness-as-alpha. fallback is the character
// glyph used when a requested symbol has no entry in symbolMap.
func LoadTileset(src image.Image, tw, th int, charMap map[rune]SourceFrame, symbolMap map[int32]SourceFrame, fallback rune) (*Tileset, error) {
	if tw <= 0 || th <= 0 {
		return nil, fmt.Errorf("tile: invalid tile size %dx%d", tw, th)
	}

	// Collect the set of distinct source frames actually referenced, in a
	// stable order, then assign each a column index.
	type key struct{ col, row int }
	seen := make(map[key]int)
	var frames []key
	assign := func(f SourceFrame) int {
		k := key{f.Col, f.Row}
		if idx, ok := seen[k]; ok {
			return idx
		}
		idx := len(frames)
		seen[k] = idx
		frames = append(frames, k)
		return idx
	}

	charIndex := make(map[rune]int, len(charMap))
	for r, f := range charMap {
		charIndex[r] = assign(f)
	}
	symbolIndex := make(map[int32]int, len(symbolMap))
	for s, f := range symbolMap {
		symbolIndex[s] = assign(f)
	}
	if _, ok := charIndex[fallback]; !ok {
		if f, ok := charMap[fallback]; ok {
			charIndex[fallback] = assign(f)
		}
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("tile: tileset has no referenced tiles")
	}

	column := ebiten.NewImage(tw, th*len(frames))
	for i, k := range frames {
		tile := grayAlphaTile(src, k.col*tw, k.row*th, tw, th)
		img := ebiten.NewImageFromImage(tile)
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(0, float64(i*th))
		column.DrawImage(img, opts)
	}

	return &Tileset{
		tw:          tw,
		th:          th,
		column:      column,
		charIndex:   charIndex,
		symbolIndex: symbolIndex,
		fallback:    fallback,
		tileCount:   len(frames),
	}, nil
}

// grayAlphaTile extracts the tw x th rectangle at (x0, y0) from src and
// converts it to white-with-alpha-grayness: alpha becomes the source
// pixel's brightness (luma), color channels become solid white so that a
// consumer's color multiplier paints the glyph in fg directly.
func grayAlphaTile(src image.Image, x0, y0, tw, th int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, tw, th))
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sr, sg, sb, sa := src.At(src.Bounds().Min.X+x0+x, src.Bounds().Min.Y+y0+y).RGBA()
			gray := color.GrayModel.Convert(color.RGBA{
				R: uint8(sr >> 8), G: uint8(sg >> 8), B: uint8(sb >> 8), A: uint8(sa >> 8),
			}).(color.Gray).Y
			alpha := uint16(gray) * uint16(sa>>8) / 255
			out.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha)})
		}
	}
	return out
}

// TileSize returns the per-tile pixel dimensions.
func (t *Tileset) TileSize() (tw, th int) { return t.tw, t.th }

// resolve returns the packed-column tile index for sym, falling back to
// the fallback character's tile when sym (a character or a domain symbol)
// has no entry.
func (t *Tileset) resolve(sym Symbol) int {
	if sym.IsChar() {
		if idx, ok := t.charIndex[sym.Rune()]; ok {
			return idx
		}
	} else if idx, ok := t.symbolIndex[sym.DomainID()]; ok {
		return idx
	}
	if globalDebug {
		log.Printf("tile: no glyph for symbol %+v, using fallback %q", sym, t.fallback)
	}
	idx, ok := t.charIndex[t.fallback]
	if !ok {
		return 0
	}
	return idx
}

// DrawTileTo paints bg across the destX,destY tile-sized rectangle of dst,
// then blits the glyph for sym on top, tinted fg via color scale.
func (t *Tileset) DrawTileTo(dst *ebiten.Image, destX, destY int, sym Symbol, fg, bg Color) {
	rect := image.Rect(destX, destY, destX+t.tw, destY+t.th)
	sub := dst.SubImage(rect).(*ebiten.Image)
	sub.Fill(colorToNRGBA(bg))

	idx := t.resolve(sym)
	glyphRect := image.Rect(0, idx*t.th, t.tw, idx*t.th+t.th)
	glyph := t.column.SubImage(glyphRect).(*ebiten.Image)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(destX), float64(destY))
	opts.ColorScale.Scale(float32(fg.R)/255, float32(fg.G)/255, float32(fg.B)/255, 1)
	opts.Blend = ebiten.BlendSourceOver
	dst.DrawImage(glyph, opts)
}

func colorToNRGBA(c Color) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
