/*
Package metadata implements the template bundle used to persist and exchange
templates.

The bundle is a JSON document holding every template keyed by its storage
key. Each template carries its name, its canvas coordinates as
"tx, ty, px, py", the rendered tiles as base64 encoded PNG data keyed by tile
key, and the per-colour pixel counts together with the user's enabled flags.
*/
package metadata

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const (
	// WhoAmI identifies bundles written by this package.
	WhoAmI = "BlueMarble"

	// SchemaVersion is the version of the bundle layout.
	SchemaVersion = "2.1.0"
)

var errWrongOwner = errors.New("metadata: not a BlueMarble bundle")

// Color is the persisted state of one palette bucket.
type Color struct {
	Count   int  `json:"count"`
	Enabled bool `json:"enabled"`
}

// Record is one persisted template.
type Record struct {
	Name     string            `json:"name"`
	SortID   int               `json:"sortID"`
	AuthorID string            `json:"authorID"`
	URL      string            `json:"url,omitempty"`
	Coords   string            `json:"coords"`
	TileSize int               `json:"tileSize,omitempty"`
	Enabled  bool              `json:"enabled"`
	Pixels   Pixels            `json:"pixels"`
	Tiles    map[string]string `json:"tiles"`
	Palette  map[string]Color  `json:"palette,omitempty"`
}

// Pixels holds the aggregate counts of a template.
type Pixels struct {
	Total    int  `json:"total"`
	Required int  `json:"required"`
	Marker   int  `json:"marker"`
	Degraded bool `json:"degraded,omitempty"`
}

// SetBuffers stores encoded tile data as base64.
func (r *Record) SetBuffers(buffers map[string][]byte) {
	r.Tiles = make(map[string]string, len(buffers))
	for k, b := range buffers {
		r.Tiles[k] = base64.StdEncoding.EncodeToString(b)
	}
}

// Buffers decodes the base64 tile data.
func (r *Record) Buffers() (map[string][]byte, error) {
	buffers := make(map[string][]byte, len(r.Tiles))
	for k, s := range r.Tiles {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("metadata: tile %s: %w", k, err)
		}
		buffers[k] = b
	}
	return buffers, nil
}

type file struct {
	WhoAmI        string            `json:"whoami"`
	ScriptVersion string            `json:"scriptVersion,omitempty"`
	SchemaVersion string            `json:"schemaVersion"`
	Templates     map[string]Record `json:"templates"`
}

// DB is the template bundle. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type DB struct {
	// Version is recorded as the writer's version.
	Version string

	templates map[string]Record
}

// New returns an empty bundle
func New() *DB {
	return &DB{
		templates: make(map[string]Record),
	}
}

// Length returns the number of templates in the bundle
func (db *DB) Length() int {
	return len(db.templates)
}

// Set stores the record under the given storage key
func (db *DB) Set(key string, r Record) error {
	if key == "" {
		return errors.New("metadata: empty storage key")
	}
	db.templates[key] = r
	return nil
}

// Get returns the record stored under key
func (db *DB) Get(key string) (Record, bool) {
	r, ok := db.templates[key]
	return r, ok
}

// Keys returns the storage keys in sorted order
func (db *DB) Keys() []string {
	keys := make([]string, 0, len(db.templates))
	for k := range db.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalBinary encodes the bundle as JSON
func (db *DB) MarshalBinary() ([]byte, error) {
	return json.Marshal(file{
		WhoAmI:        WhoAmI,
		ScriptVersion: db.Version,
		SchemaVersion: SchemaVersion,
		Templates:     db.templates,
	})
}

// UnmarshalBinary decodes the bundle from JSON
func (db *DB) UnmarshalBinary(b []byte) error {
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if f.WhoAmI != WhoAmI {
		return errWrongOwner
	}

	db.Version = f.ScriptVersion
	db.templates = f.Templates
	if db.templates == nil {
		db.templates = make(map[string]Record)
	}
	return nil
}
