/*
Package bitmap implements a reader for the indexed Windows bitmap files used
as sprite sheet sources.

Only a handful of fields are read from the container, all at fixed offsets
from the start of the file:

	0x02  uint32  total file size
	0x0A  uint32  offset of the pixel data
	0x12  uint32  image width in pixels
	0x16  uint32  image height in pixels
	0x36  16 * 4  palette entries, three color bytes then one reserved

The color bytes are read as red, green, blue by default. Bitmaps written by
Windows and most encoders store them as blue, green, red, use OrderBGR to
decode those.

The signature at offset 0 is not checked so non-bitmap input fails later
with a geometry or truncation error. Compressed, top-down and non-indexed
bitmaps are not supported.
*/
package bitmap

import (
	"errors"
	"image/color"
)

const (
	offsetFileSize   = 0x02
	offsetPixelData  = 0x0a
	offsetWidth      = 0x12
	offsetHeight     = 0x16
	offsetPalette    = 0x36
	paletteEntrySize = 4

	// ColorsPerPalette is the number of palette entries retained
	ColorsPerPalette = 16

	// TileSize is the width and height of a tile in pixels, both image
	// dimensions must be a multiple of it
	TileSize = 8

	// SheetSpan is the dimension at which an image is treated as a single
	// sprite
	SheetSpan = 64
)

var (
	// ErrSourceUnavailable is returned when there is no source to read from
	ErrSourceUnavailable = errors.New("bitmap: source unavailable")
	// ErrTruncatedInput is returned when the source ends before a field
	ErrTruncatedInput = errors.New("bitmap: truncated input")
	// ErrInvalidGeometry is returned for dimensions or sizes that cannot
	// describe a valid image
	ErrInvalidGeometry = errors.New("bitmap: invalid geometry")
	// ErrUnsupportedLayout is returned when the sprite count cannot be
	// derived from the image dimensions
	ErrUnsupportedLayout = errors.New("bitmap: unsupported sprite layout")
)

// ColorOrder is the order of the color bytes in each palette entry.
type ColorOrder int

const (
	// OrderRGB reads red, green then blue
	OrderRGB ColorOrder = iota
	// OrderBGR reads blue, green then red
	OrderBGR
)

// Bitmap is a parsed sprite sheet. Sprites are always addressed side by
// side horizontally, each one Width/Sprites pixels wide and Height pixels
// tall. A Bitmap must not be modified once parsed.
type Bitmap struct {
	Width   int
	Height  int
	Sprites int
	Palette color.Palette
	// Pix holds the raw pixel data as stored in the file. Its length is
	// taken from the container and may exceed what Width and Height need
	Pix []byte
}

// SpriteWidth returns the width in pixels of a single sprite
func (b *Bitmap) SpriteWidth() int {
	if b.Sprites <= 0 {
		return 0
	}
	return b.Width / b.Sprites
}

// TilesPerSprite returns the number of 8 by 8 tiles in each sprite
func (b *Bitmap) TilesPerSprite() int {
	return (b.SpriteWidth() / TileSize) * (b.Height / TileSize)
}

// Tiles returns the total number of tiles across all sprites
func (b *Bitmap) Tiles() int {
	return b.Sprites * b.TilesPerSprite()
}

// PixelDataSize returns the size of the pixel data in bytes
func (b *Bitmap) PixelDataSize() int {
	return len(b.Pix)
}

func spriteCount(width, height int) (int, error) {
	var n int
	switch {
	case width > SheetSpan:
		n = width / height
	case height > SheetSpan:
		n = height / width
	case width == SheetSpan || height == SheetSpan:
		n = 1
	}
	if n < 1 {
		return 0, ErrUnsupportedLayout
	}
	return n, nil
}
