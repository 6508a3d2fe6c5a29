package gbasprite

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/bodgit/gbasprite/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

func padPalette(p color.Palette) color.Palette {
	dup := make(color.Palette, bitmap.ColorsPerPalette)
	for i := range dup {
		dup[i] = color.RGBA{0, 0, 0, 0xff}
	}
	copy(dup, p)
	return dup
}

// Quantize writes m to w as an 8-bit indexed bitmap with a palette of
// exactly 16 colors, suitable for conversion with tile.Mode8. The palette is
// stored in bitmap.OrderBGR.
func Quantize(w io.Writer, m image.Image) error {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > bitmap.ColorsPerPalette {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, bitmap.ColorsPerPalette), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Pad the palette so the pixel data starts after all 16 entries and
	// adjust image so that top-left corner is at (0, 0)
	dup := *pm
	dup.Palette = padPalette(pm.Palette)
	dup.Rect = dup.Rect.Sub(dup.Rect.Min)
	pm = &dup

	return bmp.Encode(w, pm)
}
