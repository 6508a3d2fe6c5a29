package bitmap

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
)

// ReadLE seeks r to the absolute offset and reads n bytes, 1 to 8, returning
// them as an unsigned little-endian integer.
func ReadLE(r io.ReadSeeker, n int, offset int64) (uint64, error) {
	if r == nil {
		return 0, ErrSourceUnavailable
	}
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("bitmap: cannot read %d bytes as an integer", n)
	}

	var b [8]byte
	if err := readFullAt(r, b[:n], offset); err != nil {
		return 0, err
	}

	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func readFullAt(r io.ReadSeeker, b []byte, offset int64) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: %d bytes at offset %#x", ErrTruncatedInput, len(b), offset)
		}
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return nil
}

func sourceSize(r io.ReadSeeker) (int64, error) {
	n, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return n, nil
}

func readUint32(r io.ReadSeeker, offset int64) (uint32, error) {
	v, err := ReadLE(r, 4, offset)
	return uint32(v), err
}

func readDimension(r io.ReadSeeker, offset int64) (int, error) {
	v, err := readUint32(r, offset)
	if err != nil {
		return 0, err
	}
	// Negative heights mark top-down images
	if d := int32(v); d <= 0 || d%TileSize != 0 {
		return 0, fmt.Errorf("%w: dimension %d is not a positive multiple of %d", ErrInvalidGeometry, d, TileSize)
	}
	return int(v), nil
}

func readPalette(r io.ReadSeeker, order ColorOrder) (color.Palette, error) {
	var tmp [ColorsPerPalette * paletteEntrySize]byte
	if err := readFullAt(r, tmp[:], offsetPalette); err != nil {
		return nil, err
	}

	p := make(color.Palette, ColorsPerPalette)
	for i := range p {
		e := tmp[i*paletteEntrySize:]
		// The fourth byte is reserved
		switch order {
		case OrderBGR:
			p[i] = color.RGBA{e[2], e[1], e[0], 0xff}
		default:
			p[i] = color.RGBA{e[0], e[1], e[2], 0xff}
		}
	}
	return p, nil
}

// Parse reads a Bitmap from r with the palette entries in OrderRGB.
func Parse(r io.ReadSeeker) (*Bitmap, error) {
	return ParseOrder(r, OrderRGB)
}

// ParseOrder reads a Bitmap from r decoding the palette entries in the
// given order.
func ParseOrder(r io.ReadSeeker, order ColorOrder) (*Bitmap, error) {
	if r == nil {
		return nil, ErrSourceUnavailable
	}

	width, err := readDimension(r, offsetWidth)
	if err != nil {
		return nil, err
	}
	height, err := readDimension(r, offsetHeight)
	if err != nil {
		return nil, err
	}

	sprites, err := spriteCount(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d", err, width, height)
	}

	palette, err := readPalette(r, order)
	if err != nil {
		return nil, err
	}

	total, err := readUint32(r, offsetFileSize)
	if err != nil {
		return nil, err
	}
	offset, err := readUint32(r, offsetPixelData)
	if err != nil {
		return nil, err
	}
	if offset > total {
		return nil, fmt.Errorf("%w: pixel data offset %#x beyond file size %#x", ErrInvalidGeometry, offset, total)
	}
	if uint64(total-offset) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: pixel data size %#x", ErrInvalidGeometry, total-offset)
	}

	// Check the source holds the pixel data before allocating for it
	size, err := sourceSize(r)
	if err != nil {
		return nil, err
	}
	if int64(total) > size {
		return nil, fmt.Errorf("%w: %#x bytes at offset %#x, source is %#x bytes", ErrTruncatedInput, total-offset, offset, size)
	}

	pix := make([]byte, total-offset)
	if err := readFullAt(r, pix, int64(offset)); err != nil {
		return nil, err
	}

	return &Bitmap{
		Width:   width,
		Height:  height,
		Sprites: sprites,
		Palette: palette,
		Pix:     pix,
	}, nil
}

// Open parses the Bitmap stored in the named file.
func Open(file string) (*Bitmap, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return Parse(f)
}
