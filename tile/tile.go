/*
Package tile implements the conversion of bitmap sprite sheets into Game Boy
Advance tile data.

Each sprite is split into 8 by 8 tiles which are ordered left to right, top
to bottom within the sprite. All of the tiles of sprite 0 come first,
followed by those of sprite 1 and so on. Each tile is written as 64 bytes
with one palette index per pixel in Mode8, or as 32 bytes with two indices
per byte in Mode4 where the left pixel occupies the lower nibble.
*/
package tile

import (
	"errors"
	"fmt"

	"github.com/bodgit/gbasprite/bitmap"
)

const (
	tileWidth        = bitmap.TileSize
	tileHeight       = tileWidth
	tilePixels       = tileWidth * tileHeight
	colorsPerPalette = bitmap.ColorsPerPalette
)

var (
	// ErrOutOfBounds is returned when a sprite, tile or the pixel bytes
	// backing it lie outside of the bitmap
	ErrOutOfBounds = errors.New("tile: out of bounds")
	// ErrGeometryMismatch is returned when the sprites do not divide into
	// whole tiles
	ErrGeometryMismatch = errors.New("tile: geometry mismatch")
	// ErrPaletteIndex is returned for a pixel that does not reference one
	// of the 16 palette entries
	ErrPaletteIndex = errors.New("tile: invalid palette index")
	// ErrUnsupportedMode is returned for a color mode other than Mode4 or
	// Mode8
	ErrUnsupportedMode = errors.New("tile: unsupported color mode")
)

// Mode is the number of bits used per pixel, both in the source pixel data
// and in the generated tiles.
type Mode int

const (
	// Mode4 reads two pixels per byte, left pixel in the upper nibble
	Mode4 Mode = 4
	// Mode8 reads one pixel per byte
	Mode8 Mode = 8
)

// ParseMode returns the Mode for the given bits per pixel.
func ParseMode(bpp int) (Mode, error) {
	m := Mode(bpp)
	if err := m.validate(); err != nil {
		return 0, err
	}
	return m, nil
}

func (m Mode) validate() error {
	switch m {
	case Mode4, Mode8:
		return nil
	}
	return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedMode, int(m))
}

func (m Mode) stride(width int) int {
	return width * int(m) >> 3
}

// TileBytes returns the number of bytes a tile occupies in the output.
func (m Mode) TileBytes() int {
	return tilePixels * int(m) >> 3
}

func (m Mode) String() string {
	return fmt.Sprintf("%dbpp", int(m))
}

// Options are the conversion parameters.
type Options struct {
	Mode Mode
	// TopDown addresses rows from the bottom of the pixel data upwards so
	// that a bottom-up bitmap produces tiles in display order
	TopDown bool
}

var defaultOptions = Options{Mode: Mode8}

func optionsOrDefault(o *Options) (*Options, error) {
	if o == nil {
		return &defaultOptions, nil
	}
	if err := o.Mode.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

type geometry struct {
	spriteWidth int
	tilesX      int
	tilesY      int
}

func (g geometry) tiles() int {
	return g.tilesX * g.tilesY
}

func geometryOf(b *bitmap.Bitmap) (geometry, error) {
	if b.Sprites < 1 || b.Width%b.Sprites != 0 {
		return geometry{}, fmt.Errorf("%w: %d pixels wide is not %d whole sprites", ErrGeometryMismatch, b.Width, b.Sprites)
	}
	g := geometry{spriteWidth: b.Width / b.Sprites}
	if g.spriteWidth%tileWidth != 0 || b.Height%tileHeight != 0 {
		return geometry{}, fmt.Errorf("%w: %dx%d sprite is not whole tiles", ErrGeometryMismatch, g.spriteWidth, b.Height)
	}
	g.tilesX = g.spriteWidth / tileWidth
	g.tilesY = b.Height / tileHeight
	return g, nil
}
