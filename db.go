package bluemarble

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no template has the requested storage key.
var ErrNotFound = errors.New("bluemarble: template not found")

// TemplateDB stores templates and their rendered tiles in a SQLite
// database. Tile data is zstd compressed at rest.
type TemplateDB struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTemplateDB opens or creates the database in file.
func NewTemplateDB(file string, logger *zap.Logger) (*TemplateDB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS template (id INTEGER PRIMARY KEY NOT NULL, storage_key TEXT NOT NULL UNIQUE, name TEXT NOT NULL, sort_id INTEGER NOT NULL, author_id TEXT NOT NULL, url TEXT NOT NULL, coords TEXT NOT NULL, tile_size INTEGER NOT NULL, pixel_count INTEGER NOT NULL, required_count INTEGER NOT NULL, marker_count INTEGER NOT NULL, degraded INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (template_id INTEGER NOT NULL, color TEXT NOT NULL, count INTEGER NOT NULL, enabled INTEGER NOT NULL, UNIQUE(template_id, color), FOREIGN KEY(template_id) REFERENCES template(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (template_id INTEGER NOT NULL, tile_key TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(template_id, tile_key), FOREIGN KEY(template_id) REFERENCES template(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	return &TemplateDB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the database.
func (db *TemplateDB) Close() error {
	return db.db.Close()
}

// Save stores t and its encoded tiles, replacing any template with the same
// storage key.
func (db *TemplateDB) Save(t *Template, buffers map[string][]byte) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	key := t.Key()

	var id int64
	switch err = tx.QueryRow("SELECT id FROM template WHERE storage_key = ?", key).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO template (storage_key, name, sort_id, author_id, url, coords, tile_size, pixel_count, required_count, marker_count, degraded) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", key, t.DisplayName, t.SortID, t.AuthorID, t.URL, t.Coords.String(), t.TileSize, t.PixelCount, t.RequiredPixelCount, t.MarkerPixelCount, t.Degraded)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
	case nil:
		if _, err = tx.Exec("UPDATE template SET name = ?, sort_id = ?, author_id = ?, url = ?, coords = ?, tile_size = ?, pixel_count = ?, required_count = ?, marker_count = ?, degraded = ? WHERE id = ?", t.DisplayName, t.SortID, t.AuthorID, t.URL, t.Coords.String(), t.TileSize, t.PixelCount, t.RequiredPixelCount, t.MarkerPixelCount, t.Degraded, id); err != nil {
			return err
		}
		if _, err = tx.Exec("DELETE FROM palette WHERE template_id = ?", id); err != nil {
			return err
		}
		if _, err = tx.Exec("DELETE FROM tile WHERE template_id = ?", id); err != nil {
			return err
		}
	default:
		return err
	}

	for k, c := range t.Palette {
		if _, err = tx.Exec("INSERT INTO palette (template_id, color, count, enabled) VALUES (?, ?, ?, ?)", id, k.String(), c.Count, c.Enabled); err != nil {
			return err
		}
	}

	for k, b := range buffers {
		if _, err = tx.Exec("INSERT INTO tile (template_id, tile_key, data) VALUES (?, ?, ?)", id, k, compressTile(b)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	db.logger.Debug("saved template", zap.String("template", key), zap.Int("tiles", len(buffers)))

	return nil
}

func (db *TemplateDB) lookup(key string) (int64, *Template, error) {
	var (
		id                                         int64
		name, authorID, url, coords                string
		sortID, tileSize, pixels, required, marker int
		degraded                                   bool
	)
	switch err := db.db.QueryRow("SELECT id, name, sort_id, author_id, url, coords, tile_size, pixel_count, required_count, marker_count, degraded FROM template WHERE storage_key = ?", key).Scan(&id, &name, &sortID, &authorID, &url, &coords, &tileSize, &pixels, &required, &marker, &degraded); err {
	case sql.ErrNoRows:
		return 0, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	case nil:
	default:
		return 0, nil, err
	}

	c, err := tile.ParseCoords(coords)
	if err != nil {
		return 0, nil, err
	}

	t := NewTemplate(name, c)
	t.StorageKey = key
	t.SortID = sortID
	t.AuthorID = authorID
	t.URL = url
	t.TileSize = tileSize
	t.PixelCount = pixels
	t.RequiredPixelCount = required
	t.MarkerPixelCount = marker
	t.Degraded = degraded

	rows, err := db.db.Query("SELECT color, count, enabled FROM palette WHERE template_id = ?", id)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s       string
			count   int
			enabled bool
		)
		if err := rows.Scan(&s, &count, &enabled); err != nil {
			return 0, nil, err
		}
		k, err := palette.ParseKey(s)
		if err != nil {
			return 0, nil, err
		}
		t.Palette[k] = &ColorCount{Count: count, Enabled: enabled}
	}

	return id, t, rows.Err()
}

// Load returns the template stored under key with its encoded tiles.
func (db *TemplateDB) Load(key string) (*Template, map[string][]byte, error) {
	id, t, err := db.lookup(key)
	if err != nil {
		return nil, nil, err
	}

	rows, err := db.db.Query("SELECT tile_key, data FROM tile WHERE template_id = ?", id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	buffers := make(map[string][]byte)
	for rows.Next() {
		var (
			k    string
			data []byte
		)
		if err := rows.Scan(&k, &data); err != nil {
			return nil, nil, err
		}
		b, err := decompressTile(data)
		if err != nil {
			return nil, nil, fmt.Errorf("bluemarble: tile %s: %w", k, err)
		}
		if err := templatePrefixes(t.TilePrefixes).add(k); err != nil {
			return nil, nil, err
		}
		buffers[k] = b
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return t, buffers, nil
}

// List returns every stored template in sort id order. Tile data is not
// loaded but the tile prefixes are.
func (db *TemplateDB) List() ([]*Template, error) {
	rows, err := db.db.Query("SELECT storage_key FROM template ORDER BY sort_id, storage_key")
	if err != nil {
		return nil, err
	}

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]*Template, 0, len(keys))
	for _, k := range keys {
		id, t, err := db.lookup(k)
		if err != nil {
			return nil, err
		}
		if err := db.loadPrefixes(id, t); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (db *TemplateDB) loadPrefixes(id int64, t *Template) error {
	rows, err := db.db.Query("SELECT tile_key FROM tile WHERE template_id = ?", id)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return err
		}
		if err := templatePrefixes(t.TilePrefixes).add(k); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SetEnabled toggles a single colour of a stored template.
func (db *TemplateDB) SetEnabled(key string, k palette.Key, enabled bool) error {
	result, err := db.db.Exec("UPDATE palette SET enabled = ? WHERE color = ? AND template_id = (SELECT id FROM template WHERE storage_key = ?)", enabled, k.String(), key)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, key, k)
	}
	return nil
}

// Delete removes a template and its tiles.
func (db *TemplateDB) Delete(key string) error {
	result, err := db.db.Exec("DELETE FROM template WHERE storage_key = ?", key)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	db.logger.Debug("deleted template", zap.String("template", key))
	return nil
}
