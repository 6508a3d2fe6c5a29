package gbasprite

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gbasprite/bitmap"
	"github.com/bodgit/gbasprite/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	writeFile(t, filepath.Join(dir, "a.bmp"), testBitmap(64, 64, 1))
	writeFile(t, filepath.Join(dir, "sub", "b.BMP"), testBitmap(128, 64, 2))
	writeFile(t, filepath.Join(dir, ".hidden", "c.bmp"), testBitmap(64, 64, 3))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("not a bitmap"))

	return dir
}

func TestBatch(t *testing.T) {
	dir := batchDir(t)
	c := New(nil, testLogger(), Options{Mode: tile.Mode8})

	require.NoError(t, c.Batch(dir, 4, false))

	b, err := os.ReadFile(filepath.Join(dir, "a.bin"))
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{1}, 4096), b)

	b, err = os.ReadFile(filepath.Join(dir, "sub", "b.bin"))
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{2}, 8192), b)

	assert.NoFileExists(t, filepath.Join(dir, ".hidden", "c.bin"))
	assert.NoFileExists(t, filepath.Join(dir, "notes.bin"))
}

func TestBatchFailure(t *testing.T) {
	dir := batchDir(t)
	writeFile(t, filepath.Join(dir, "bad.bmp"), testBitmap(32, 32, 0))
	c := New(nil, testLogger(), Options{Mode: tile.Mode8})

	err := c.Batch(dir, 2, false)
	assert.ErrorIs(t, err, bitmap.ErrUnsupportedLayout)
	assert.NoFileExists(t, filepath.Join(dir, "bad.bin"))
}

func TestBatchKeepGoing(t *testing.T) {
	dir := batchDir(t)
	writeFile(t, filepath.Join(dir, "bad.bmp"), testBitmap(32, 32, 0))
	c := New(nil, testLogger(), Options{Mode: tile.Mode8})

	require.NoError(t, c.Batch(dir, 2, true))
	assert.NoFileExists(t, filepath.Join(dir, "bad.bin"))
	assert.FileExists(t, filepath.Join(dir, "a.bin"))
	assert.FileExists(t, filepath.Join(dir, "sub", "b.bin"))
}
