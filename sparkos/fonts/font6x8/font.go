// Package font6x8 is the console bitmap font: printable ASCII in 6x8 cells.
package font6x8

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Cell metrics. Baseline is the row tinyfont's y coordinate refers to.
const (
	Width    = 6
	Height   = 8
	Baseline = 7
)

const (
	firstGlyph = 0x20
	glyphCount = 0x7f - firstGlyph
)

// Font implements tinyfont.Fonter for tinyterm and the panic screen.
// Runes outside printable ASCII draw as '?'.
//
// Not safe for concurrent use: GetGlyph reuses one glyph value.
var Font tinyfont.Fonter = &font6x8{}

type font6x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	base := glyphIndex(g.r) * Height
	for row := 0; row < Height; row++ {
		b := glyphRows[base+row]
		for col := 0; col < Width; col++ {
			if b&(0x20>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(Baseline-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Width,
		XOffset:  0,
		YOffset:  -Baseline,
	}
}

func (f *font6x8) GetYAdvance() uint8 { return Height }

func (f *font6x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func glyphIndex(r rune) int {
	if r < firstGlyph || r >= firstGlyph+glyphCount {
		r = '?'
	}
	return int(r - firstGlyph)
}
