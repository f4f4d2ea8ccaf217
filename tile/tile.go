/*
Package tile splits a template image into segments aligned to the canvas tile
grid and renders each segment for overlay.

The canvas is a grid of square tiles, 1000 by 1000 pixels by default. A
template is anchored at a tile coordinate plus a pixel offset within that
tile, so the first and last segments on each axis are usually partial.
*/
package tile

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// DefaultSize is the edge length of a canvas tile in pixels.
const DefaultSize = 1000

// Coords is the position of a template's top-left pixel on the canvas.
type Coords struct {
	TileX, TileY   int
	PixelX, PixelY int
}

func (c Coords) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", c.TileX, c.TileY, c.PixelX, c.PixelY)
}

// ParseCoords parses "tx, ty, px, py". Every value must be non-negative.
func ParseCoords(s string) (Coords, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Coords{}, fmt.Errorf("tile: invalid coordinates %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Coords{}, fmt.Errorf("tile: invalid coordinates %q", s)
		}
		v[i] = n
	}
	return Coords{v[0], v[1], v[2], v[3]}, nil
}

// Segment is the part of a template that falls within one canvas tile.
type Segment struct {
	// Tile is the absolute tile coordinate.
	Tile image.Point
	// Offset is the position of the segment within the tile.
	Offset image.Point
	// Rect is the segment in template image space.
	Rect image.Rectangle
}

// Key returns the segment's "tttt,tttt,ppp,ppp" tile key.
func (s Segment) Key() string {
	return Key{s.Tile.X, s.Tile.Y, s.Offset.X, s.Offset.Y}.String()
}

// Prefix returns the "tttt,tttt" part of the segment's tile key.
func (s Segment) Prefix() string {
	return Prefix(s.Tile.X, s.Tile.Y)
}

type span struct {
	tile, offset, start, length int
}

// spans walks one axis from origin pixel p for length pixels.
func spans(tile0, p, length, size int) []span {
	var out []span
	for pos := p; pos < p+length; {
		n := size - pos%size
		if rem := length - (pos - p); rem < n {
			n = rem
		}
		out = append(out, span{
			tile:   tile0 + pos/size,
			offset: pos % size,
			start:  pos - p,
			length: n,
		})
		pos += n
	}
	return out
}

// Decompose splits a width by height image placed at origin into segments
// of at most size by size pixels. Segments are ordered by tile row then tile
// column. An empty image yields no segments.
func Decompose(width, height int, origin Coords, size int) []Segment {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}

	xs := spans(origin.TileX, origin.PixelX, width, size)
	ys := spans(origin.TileY, origin.PixelY, height, size)

	segments := make([]Segment, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			segments = append(segments, Segment{
				Tile:   image.Pt(x.tile, y.tile),
				Offset: image.Pt(x.offset, y.offset),
				Rect:   image.Rect(x.start, y.start, x.start+x.length, y.start+y.length),
			})
		}
	}
	return segments
}
