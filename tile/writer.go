package tile

import (
	"fmt"
	"io"

	"github.com/bodgit/gbasprite/bitmap"
)

type encoder struct {
	extractor
	buf []byte
}

func (e *encoder) pack(dst []byte, px *[tilePixels]byte) {
	switch e.o.Mode {
	case Mode4:
		for i := range dst {
			dst[i] = lowerNibble(px[i<<1]) | lowerNibble(px[i<<1+1])<<4
		}
	case Mode8:
		copy(dst, px[:])
	}
}

func (e *encoder) encode() error {
	size := e.o.Mode.TileBytes()
	tiles := e.g.tiles()

	var px [tilePixels]byte
	for sprite := 0; sprite < e.b.Sprites; sprite++ {
		base := sprite * tiles
		for t := 0; t < tiles; t++ {
			if err := e.extract(sprite, t, &px); err != nil {
				return err
			}
			offset := (base + t) * size
			e.pack(e.buf[offset:offset+size], &px)
		}
	}

	return nil
}

// Convert returns the tiles of every sprite in b packed for the console. The
// result is always the same size as the pixel data of b, any bytes beyond
// the last tile are zero. A nil Options uses Mode8.
func Convert(b *bitmap.Bitmap, o *Options) ([]byte, error) {
	o, err := optionsOrDefault(o)
	if err != nil {
		return nil, err
	}
	g, err := geometryOf(b)
	if err != nil {
		return nil, err
	}

	if need := b.Sprites * g.tiles() * o.Mode.TileBytes(); need > len(b.Pix) {
		return nil, fmt.Errorf("%w: %d tiles need %#x bytes, have %#x", ErrOutOfBounds, b.Sprites*g.tiles(), need, len(b.Pix))
	}

	e := encoder{
		extractor: extractor{b: b, o: o, g: g},
		buf:       make([]byte, len(b.Pix)),
	}
	if err := e.encode(); err != nil {
		return nil, err
	}

	return e.buf, nil
}

// Encode writes the tiles of b to w in console format.
func Encode(w io.Writer, b *bitmap.Bitmap, o *Options) error {
	buf, err := Convert(b, o)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
