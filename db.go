package gbasprite

import (
	"database/sql"
	"fmt"
	"image/color"

	_ "github.com/mattn/go-sqlite3"
)

// SheetDB caches converted sheets keyed by the SHA-1 of the source bitmap
// and the conversion options.
type SheetDB struct {
	db *sql.DB
}

// NewSheetDB opens or creates the cache database in file.
func NewSheetDB(file string) (*SheetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, mode INTEGER NOT NULL, top_down INTEGER NOT NULL, color_order INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, sprites INTEGER NOT NULL, pixel_data_size INTEGER NOT NULL, palette BLOB NOT NULL, tiles BLOB NOT NULL, UNIQUE(sha1, mode, top_down, color_order))"); err != nil {
		db.Close()
		return nil, err
	}

	return &SheetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *SheetDB) Close() error {
	return db.db.Close()
}

func packPalette(p color.Palette) []byte {
	b := make([]byte, 0, len(p)*3)
	for _, c := range p {
		r, g, bl, _ := c.RGBA()
		b = append(b, byte(r>>8), byte(g>>8), byte(bl>>8))
	}
	return b
}

func unpackPalette(b []byte) color.Palette {
	p := make(color.Palette, len(b)/3)
	for i := range p {
		p[i] = color.RGBA{b[i*3], b[i*3+1], b[i*3+2], 0xff}
	}
	return p
}

// AddSheet stores the sheet converted with the given options from the
// bitmap with the given hash.
func (db *SheetDB) AddSheet(sha string, o Options, s *Sheet) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO sheet (sha1, mode, top_down, color_order, width, height, sprites, pixel_data_size, palette, tiles) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", sha, int(o.Mode), o.TopDown, int(o.Order), s.Width, s.Height, s.Sprites, s.PixelDataSize, packPalette(s.Palette), s.Tiles); err != nil {
		return err
	}
	return nil
}

// FindSheet returns the cached sheet for the bitmap hash and options, or nil
// if there is none.
func (db *SheetDB) FindSheet(sha string, o Options) (*Sheet, error) {
	var s Sheet
	var palette []byte
	switch err := db.db.QueryRow("SELECT width, height, sprites, pixel_data_size, palette, tiles FROM sheet WHERE sha1 = ? AND mode = ? AND top_down = ? AND color_order = ?", sha, int(o.Mode), o.TopDown, int(o.Order)).Scan(&s.Width, &s.Height, &s.Sprites, &s.PixelDataSize, &palette, &s.Tiles); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		s.Palette = unpackPalette(palette)
		return &s, nil
	default:
		return nil, err
	}
}
