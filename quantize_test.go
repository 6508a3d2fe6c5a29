package gbasprite

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/gbasprite/bitmap"
	"github.com/bodgit/gbasprite/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 128, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			m.Set(x, y, color.RGBA{byte(x * 2), byte(y * 4), byte(x + y), 0xff})
		}
	}

	w := new(bytes.Buffer)
	require.NoError(t, Quantize(w, m))

	b, err := bitmap.ParseOrder(bytes.NewReader(w.Bytes()), bitmap.OrderBGR)
	require.NoError(t, err)
	assert.Equal(t, 128, b.Width)
	assert.Equal(t, 64, b.Height)
	assert.Equal(t, 2, b.Sprites)
	assert.Len(t, b.Palette, bitmap.ColorsPerPalette)

	out, err := tile.Convert(b, &tile.Options{Mode: tile.Mode8})
	require.NoError(t, err)
	require.Len(t, out, 128*64)
	for _, p := range out {
		require.Less(t, p, byte(bitmap.ColorsPerPalette))
	}
}

func TestQuantizePaletted(t *testing.T) {
	m := image.NewPaletted(image.Rect(8, 8, 72, 72), testPalette)
	for i := range m.Pix {
		m.Pix[i] = 2
	}

	w := new(bytes.Buffer)
	require.NoError(t, Quantize(w, m))

	c := New(nil, testLogger(), Options{Mode: tile.Mode8, Order: bitmap.OrderBGR})
	s, err := c.Convert(bytes.NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, s.Width)
	assert.Equal(t, 4096, s.PixelDataSize)
	assert.Equal(t, bytes.Repeat([]byte{2}, 4096), s.Tiles)

	// Unused entries are padded with black
	want := append(color.Palette{}, testPalette...)
	for len(want) < bitmap.ColorsPerPalette {
		want = append(want, color.RGBA{0, 0, 0, 0xff})
	}
	assert.Equal(t, want, s.Palette)

	// The source image keeps its own palette
	assert.Len(t, m.Palette, len(testPalette))
}
