package tile

import (
	"image/color"
	"io"
)

// EncodePalette writes p to w as 16 little-endian BGR555 colors, the format
// of a console palette bank. Missing colors are written as black and any
// beyond the first 16 are ignored.
func EncodePalette(w io.Writer, p color.Palette) error {
	var buf [colorsPerPalette * 2]byte
	for i, c := range p {
		if i == colorsPerPalette {
			break
		}
		r, g, b, _ := c.RGBA()

		// Color is packed as 0BBBBBGGGGGRRRRR
		v := uint16(b>>11)<<10 | uint16(g>>11)<<5 | uint16(r>>11)

		buf[i*2] = byte(v)
		buf[i*2+1] = byte(v >> 8)
	}

	_, err := w.Write(buf[:])
	return err
}
