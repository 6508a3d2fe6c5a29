/*
Package gbasprite is a library for converting bitmap sprite sheets into Game
Boy Advance tile data.
*/
package gbasprite

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/bodgit/gbasprite/bitmap"
	"github.com/bodgit/gbasprite/tile"
)

// Sheet is the result of converting a sprite sheet.
type Sheet struct {
	Width         int
	Height        int
	Sprites       int
	PixelDataSize int
	Palette       color.Palette
	Tiles         []byte
}

// WriteStats writes a human readable summary of the sheet to w.
func (s *Sheet) WriteStats(w io.Writer) error {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "Image size: %dx%d\n", s.Width, s.Height)
	fmt.Fprintf(buf, "Sprites: %d\n", s.Sprites)
	fmt.Fprintf(buf, "Pixel data size: 0x%06X\n", s.PixelDataSize)
	fmt.Fprint(buf, "Colors:")
	for _, c := range s.Palette {
		r, g, b, _ := c.RGBA()
		fmt.Fprintf(buf, " %02X%02X%02X", r>>8, g>>8, b>>8)
	}
	fmt.Fprintln(buf)

	_, err := w.Write(buf.Bytes())
	return err
}

// Options are the parameters for parsing and converting a sprite sheet.
type Options struct {
	Mode    tile.Mode
	TopDown bool
	// Order is the order of the color bytes in the bitmap palette
	Order bitmap.ColorOrder
}

func (o Options) tileOptions() *tile.Options {
	return &tile.Options{
		Mode:    o.Mode,
		TopDown: o.TopDown,
	}
}

// Converter converts sprite sheets, optionally caching the results.
type Converter struct {
	db      *SheetDB
	logger  *log.Logger
	options Options
}

// New returns a Converter using the given options, a zero Mode means
// tile.Mode8. db may be nil to disable caching.
func New(db *SheetDB, logger *log.Logger, options Options) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if options.Mode == 0 {
		options.Mode = tile.Mode8
	}
	return &Converter{
		db:      db,
		logger:  logger,
		options: options,
	}
}

// Convert parses the bitmap read from r and converts it. Nothing is returned
// on error, never a partial sheet.
func (c *Converter) Convert(r io.ReadSeeker) (*Sheet, error) {
	b, err := bitmap.ParseOrder(r, c.options.Order)
	if err != nil {
		return nil, err
	}

	buf, err := tile.Convert(b, c.options.tileOptions())
	if err != nil {
		return nil, err
	}

	return &Sheet{
		Width:         b.Width,
		Height:        b.Height,
		Sprites:       b.Sprites,
		PixelDataSize: b.PixelDataSize(),
		Palette:       b.Palette,
		Tiles:         buf,
	}, nil
}

func (c *Converter) convertFile(file string) (*Sheet, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bitmap.ErrSourceUnavailable, err)
	}
	defer f.Close()

	if c.db == nil {
		return c.Convert(f)
	}

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	s, err := c.db.FindSheet(sha, c.options)
	if err != nil {
		return nil, err
	}
	if s != nil {
		c.logger.Printf("Using cached conversion of \"%s\"\n", file)
		return s, nil
	}

	if s, err = c.Convert(f); err != nil {
		return nil, err
	}

	if err := c.db.AddSheet(sha, c.options, s); err != nil {
		return nil, err
	}

	return s, nil
}

// ConvertFile converts the bitmap in file and writes the tiles to output.
// The output file is not created if the conversion fails.
func (c *Converter) ConvertFile(file, output string) (*Sheet, error) {
	s, err := c.convertFile(file)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, err
	}

	if err := writeAndClose(f, s.Tiles); err != nil {
		return nil, err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\", %d sprites of %dx%d\n", file, output, s.Sprites, s.Width/s.Sprites, s.Height)

	return s, nil
}

func writeAndClose(w io.WriteCloser, b []byte) error {
	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
