package bluemarble

import (
	"fmt"

	"github.com/bodgit/bluemarble/metadata"
	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
)

// Record returns the persisted form of t together with its encoded tiles.
func (t *Template) Record(buffers map[string][]byte) metadata.Record {
	r := metadata.Record{
		Name:     t.DisplayName,
		SortID:   t.SortID,
		AuthorID: t.AuthorID,
		URL:      t.URL,
		Coords:   t.Coords.String(),
		TileSize: t.TileSize,
		Enabled:  true,
		Pixels: metadata.Pixels{
			Total:    t.PixelCount,
			Required: t.RequiredPixelCount,
			Marker:   t.MarkerPixelCount,
			Degraded: t.Degraded,
		},
		Palette: make(map[string]metadata.Color, len(t.Palette)),
	}
	for k, c := range t.Palette {
		r.Palette[k.String()] = metadata.Color{Count: c.Count, Enabled: c.Enabled}
	}
	r.SetBuffers(buffers)
	return r
}

type templatePrefixes map[string]struct{}

func (p templatePrefixes) add(key string) error {
	k, err := tile.ParseKey(key)
	if err != nil {
		return err
	}
	p[k.Prefix()] = struct{}{}
	return nil
}

// TemplateFromRecord rebuilds a template from its persisted form. The
// counts and enabled flags are restored exactly as stored.
func TemplateFromRecord(storageKey string, r metadata.Record) (*Template, map[string][]byte, error) {
	coords, err := tile.ParseCoords(r.Coords)
	if err != nil {
		return nil, nil, err
	}

	t := NewTemplate(r.Name, coords)
	t.SortID = r.SortID
	t.AuthorID = r.AuthorID
	t.URL = r.URL
	t.StorageKey = storageKey
	t.TileSize = r.TileSize
	t.PixelCount = r.Pixels.Total
	t.RequiredPixelCount = r.Pixels.Required
	t.MarkerPixelCount = r.Pixels.Marker
	t.Degraded = r.Pixels.Degraded

	for s, c := range r.Palette {
		k, err := palette.ParseKey(s)
		if err != nil {
			return nil, nil, fmt.Errorf("bluemarble: template %s: %w", storageKey, err)
		}
		t.Palette[k] = &ColorCount{Count: c.Count, Enabled: c.Enabled}
	}

	buffers, err := r.Buffers()
	if err != nil {
		return nil, nil, err
	}
	for k := range buffers {
		if err := templatePrefixes(t.TilePrefixes).add(k); err != nil {
			return nil, nil, err
		}
	}

	return t, buffers, nil
}
