package tile

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePalette(t *testing.T) {
	p := color.Palette{
		color.RGBA{0xff, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0xff, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	}

	w := new(bytes.Buffer)
	require.NoError(t, EncodePalette(w, p))

	want := make([]byte, 32)
	copy(want, []byte{0x1f, 0x00, 0xe0, 0x03, 0x00, 0x7c, 0xff, 0x7f})
	assert.Equal(t, want, w.Bytes())
}

func TestEncodePaletteLimit(t *testing.T) {
	p := make(color.Palette, 20)
	for i := range p {
		p[i] = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}

	w := new(bytes.Buffer)
	require.NoError(t, EncodePalette(w, p))
	assert.Equal(t, bytes.Repeat([]byte{0xff, 0x7f}, 16), w.Bytes())
}
