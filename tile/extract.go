package tile

import (
	"fmt"

	"github.com/bodgit/gbasprite/bitmap"
)

func upperNibble(b byte) byte {
	return b >> 4
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

type extractor struct {
	b *bitmap.Bitmap
	o *Options
	g geometry
}

func (e *extractor) extract(sprite, index int, px *[tilePixels]byte) error {
	if sprite < 0 || sprite >= e.b.Sprites {
		return fmt.Errorf("%w: sprite %d of %d", ErrOutOfBounds, sprite, e.b.Sprites)
	}
	if index < 0 || index >= e.g.tiles() {
		return fmt.Errorf("%w: tile %d of %d", ErrOutOfBounds, index, e.g.tiles())
	}

	stride := e.o.Mode.stride(e.b.Width)
	ox := sprite*e.g.spriteWidth + index%e.g.tilesX*tileWidth
	oy := index / e.g.tilesX * tileHeight

	for y := 0; y < tileHeight; y++ {
		row := oy + y
		if e.o.TopDown {
			row = e.b.Height - 1 - row
		}

		start := row*stride + e.o.Mode.stride(ox)
		end := start + e.o.Mode.stride(tileWidth)
		if end > len(e.b.Pix) {
			return fmt.Errorf("%w: sprite %d tile %d needs bytes up to %#x of %#x", ErrOutOfBounds, sprite, index, end, len(e.b.Pix))
		}

		line := px[y*tileWidth : (y+1)*tileWidth]
		switch e.o.Mode {
		case Mode4:
			for x, p := range e.b.Pix[start:end] {
				line[x<<1] = upperNibble(p)
				line[x<<1+1] = lowerNibble(p)
			}
		case Mode8:
			for x, p := range e.b.Pix[start:end] {
				if p >= colorsPerPalette {
					return fmt.Errorf("%w: %d at (%d, %d)", ErrPaletteIndex, p, ox+x, row)
				}
				line[x] = p
			}
		}
	}

	return nil
}

// Extract returns the 64 palette indices of a tile within a sprite, one
// byte per pixel in row-major order. Tiles are numbered left to right, top
// to bottom within the sprite. A nil Options uses Mode8.
func Extract(b *bitmap.Bitmap, sprite, index int, o *Options) ([]byte, error) {
	o, err := optionsOrDefault(o)
	if err != nil {
		return nil, err
	}
	g, err := geometryOf(b)
	if err != nil {
		return nil, err
	}

	e := extractor{b: b, o: o, g: g}

	var px [tilePixels]byte
	if err := e.extract(sprite, index, &px); err != nil {
		return nil, err
	}
	return px[:], nil
}
