package bluemarble

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
)

const defaultDisplayName = "My template"

// ErrUnknownColor is returned when toggling a colour the template does not use.
var ErrUnknownColor = errors.New("bluemarble: colour not in template palette")

// ColorCount is the number of template pixels in one palette bucket and
// whether the user wants them drawn.
type ColorCount struct {
	Count   int
	Enabled bool
}

// Template is a single template placed on the canvas. It is owned by the
// caller; an Engine only updates it when CreateTemplateTiles succeeds.
type Template struct {
	DisplayName string
	SortID      int
	AuthorID    string
	URL         string
	Coords      tile.Coords
	// TileSize is the canvas tile size the template is cut to. Zero uses
	// the engine's size.
	TileSize int

	PixelCount         int
	RequiredPixelCount int
	MarkerPixelCount   int
	// Degraded is set when the pixel counts are approximate.
	Degraded bool

	Palette      map[palette.Key]*ColorCount
	TilePrefixes map[string]struct{}

	// StorageKey identifies the template when persisted. When empty,
	// "<SortID> <AuthorID>" is used.
	StorageKey string
}

// NewTemplate returns an empty template anchored at coords.
func NewTemplate(name string, coords tile.Coords) *Template {
	if name == "" {
		name = defaultDisplayName
	}
	return &Template{
		DisplayName:  name,
		Coords:       coords,
		Palette:      make(map[palette.Key]*ColorCount),
		TilePrefixes: make(map[string]struct{}),
	}
}

// Key returns the storage key of the template.
func (t *Template) Key() string {
	if t.StorageKey != "" {
		return t.StorageKey
	}
	return fmt.Sprintf("%d %s", t.SortID, t.AuthorID)
}

// Touches reports whether the template has a segment on the given tile.
func (t *Template) Touches(tileX, tileY int) bool {
	_, ok := t.TilePrefixes[tile.Prefix(tileX, tileY)]
	return ok
}

// Enabled reports whether pixels in bucket k should be drawn. Buckets the
// template does not know about are enabled.
func (t *Template) Enabled(k palette.Key) bool {
	if c, ok := t.Palette[k]; ok {
		return c.Enabled
	}
	return true
}

// SetEnabled toggles bucket k.
func (t *Template) SetEnabled(k palette.Key, enabled bool) error {
	c, ok := t.Palette[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColor, k)
	}
	c.Enabled = enabled
	return nil
}

// ApplyStatistics stores s in the template. Enabled flags of buckets that
// are still present are kept, new buckets are enabled and buckets that no
// longer occur are dropped.
func (t *Template) ApplyStatistics(s Statistics) {
	t.PixelCount = s.PixelCount
	t.RequiredPixelCount = s.RequiredPixelCount
	t.MarkerPixelCount = s.MarkerPixelCount
	t.Degraded = s.Degraded

	p := make(map[palette.Key]*ColorCount, len(s.Counts))
	for k, n := range s.Counts {
		enabled := true
		if old, ok := t.Palette[k]; ok {
			enabled = old.Enabled
		}
		p[k] = &ColorCount{Count: n, Enabled: enabled}
	}
	t.Palette = p
}

// PaletteRow is one line of a colour filter list.
type PaletteRow struct {
	Key palette.Key
	ColorCount
}

// SortedPalette returns the template's buckets, most frequent first.
func (t *Template) SortedPalette() []PaletteRow {
	rows := make([]PaletteRow, 0, len(t.Palette))
	for k, c := range t.Palette {
		rows = append(rows, PaletteRow{Key: k, ColorCount: *c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key.String() < rows[j].Key.String()
	})
	return rows
}
