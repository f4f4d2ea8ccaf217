/*
Package palette implements the site colour palette used to classify template
pixels.

A Registry is built from a list of palette entries. The entry named
"Transparent" is not addressable by colour; instead the reserved marker colour
#deface stands in for it and carries its metadata. Any opaque colour that is
not in the palette is counted against the synthetic "other" key.
*/
package palette

import (
	"image/color"
	"sort"
	"strings"
)

const transparentName = "transparent"

// Color is an exact 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Marker is the reserved colour meaning "intentionally transparent on the
// canvas".
var Marker = Color{222, 250, 206}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, 0xff}
}

func colorOf(c color.NRGBA) Color {
	return Color{c.R, c.G, c.B}
}

func (c Color) less(o Color) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	if c.G != o.G {
		return c.G < o.G
	}
	return c.B < o.B
}

// Entry is one colour of the site palette.
type Entry struct {
	ID      ID
	Premium bool
	Name    string
	RGB     Color
}

// Meta is the display metadata bound to a Key.
type Meta struct {
	ID      ID
	Premium bool
	Name    string
}

// Registry is the set of allowed keys and their metadata. It is read-only
// once built and safe for concurrent use.
type Registry struct {
	allowed map[Key]struct{}
	meta    map[Key]Meta
	colors  []Color
}

// New builds a Registry from entries. A nil or empty list yields a registry
// holding only the marker and other keys.
func New(entries []Entry) *Registry {
	r := &Registry{
		allowed: make(map[Key]struct{}),
		meta:    make(map[Key]Meta),
	}

	boundMarker := false
	for _, e := range entries {
		m := Meta{ID: e.ID, Premium: e.Premium, Name: e.Name}
		if strings.ToLower(e.Name) == transparentName {
			if !boundMarker {
				r.meta[MarkerKey] = m
				boundMarker = true
			}
			continue
		}
		if e.RGB == Marker {
			continue
		}
		k := ColorKey(e.RGB)
		if _, ok := r.allowed[k]; !ok {
			r.colors = append(r.colors, e.RGB)
		}
		r.allowed[k] = struct{}{}
		r.meta[k] = m
	}
	sort.Slice(r.colors, func(i, j int) bool { return r.colors[i].less(r.colors[j]) })

	r.allowed[MarkerKey] = struct{}{}
	r.allowed[OtherKey] = struct{}{}
	r.meta[OtherKey] = Meta{ID: StringID("other"), Premium: false, Name: "Other"}

	return r
}

// Allowed reports whether k is a bucket of this registry.
func (r *Registry) Allowed(k Key) bool {
	_, ok := r.allowed[k]
	return ok
}

// Contains reports whether c is a literal palette colour.
func (r *Registry) Contains(c Color) bool {
	return c != Marker && r.Allowed(ColorKey(c))
}

// Meta returns the metadata bound to k.
func (r *Registry) Meta(k Key) (Meta, bool) {
	m, ok := r.meta[k]
	return m, ok
}

// Colors returns the literal palette colours ordered by RGB.
func (r *Registry) Colors() []Color {
	return append([]Color(nil), r.colors...)
}

// Keys returns every allowed key: literal colours ordered by RGB, then the
// marker, then other.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.colors)+2)
	for _, c := range r.colors {
		keys = append(keys, ColorKey(c))
	}
	return append(keys, MarkerKey, OtherKey)
}

// Len returns the number of allowed keys.
func (r *Registry) Len() int {
	return len(r.allowed)
}
