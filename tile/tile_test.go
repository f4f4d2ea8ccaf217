package tile

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeAligned(t *testing.T) {
	segments := Decompose(1000, 1000, Coords{TileX: 12, TileY: 34}, DefaultSize)

	require.Len(t, segments, 1)
	assert.Equal(t, Segment{
		Tile:   image.Pt(12, 34),
		Offset: image.Pt(0, 0),
		Rect:   image.Rect(0, 0, 1000, 1000),
	}, segments[0])
	assert.Equal(t, "0012,0034,000,000", segments[0].Key())
	assert.Equal(t, "0012,0034", segments[0].Prefix())
}

func TestDecomposeStraddling(t *testing.T) {
	segments := Decompose(1500, 1000, Coords{TileX: 5, TileY: 6, PixelX: 500}, DefaultSize)

	require.Len(t, segments, 2)
	assert.Equal(t, 500, segments[0].Rect.Dx())
	assert.Equal(t, 1000, segments[1].Rect.Dx())
	assert.Equal(t, segments[0].Tile.X+1, segments[1].Tile.X)
	for _, s := range segments {
		assert.Equal(t, 1000, s.Rect.Dy())
	}
	assert.Equal(t, "0005,0006,500,000", segments[0].Key())
	assert.Equal(t, "0006,0006,000,000", segments[1].Key())
	assert.Equal(t, image.Rect(500, 0, 1500, 1000), segments[1].Rect)
}

func TestDecomposeGrid(t *testing.T) {
	// 25 wide from offset 7 crosses three boundaries, 12 high from offset 5 crosses one
	origin := Coords{TileX: 1, TileY: 2, PixelX: 7, PixelY: 5}
	segments := Decompose(25, 12, origin, 10)

	require.Len(t, segments, 8)

	expected := []Segment{
		{image.Pt(1, 2), image.Pt(7, 5), image.Rect(0, 0, 3, 5)},
		{image.Pt(2, 2), image.Pt(0, 5), image.Rect(3, 0, 13, 5)},
		{image.Pt(3, 2), image.Pt(0, 5), image.Rect(13, 0, 23, 5)},
		{image.Pt(4, 2), image.Pt(0, 5), image.Rect(23, 0, 25, 5)},
		{image.Pt(1, 3), image.Pt(7, 0), image.Rect(0, 5, 3, 12)},
		{image.Pt(2, 3), image.Pt(0, 0), image.Rect(3, 5, 13, 12)},
		{image.Pt(3, 3), image.Pt(0, 0), image.Rect(13, 5, 23, 12)},
		{image.Pt(4, 3), image.Pt(0, 0), image.Rect(23, 5, 25, 12)},
	}
	assert.Equal(t, expected, segments)
}

func TestDecomposeCoverage(t *testing.T) {
	tables := []struct {
		name          string
		width, height int
		origin        Coords
		size          int
	}{
		{"aligned", 20, 20, Coords{}, 10},
		{"offset", 23, 17, Coords{TileX: 3, TileY: 9, PixelX: 9, PixelY: 1}, 10},
		{"tiny tiles", 7, 5, Coords{PixelX: 1, PixelY: 2}, 3},
		{"unit tiles", 4, 3, Coords{TileX: 2}, 1},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			segments := Decompose(table.width, table.height, table.origin, table.size)

			area := 0
			seen := make(map[string]struct{})
			for _, s := range segments {
				area += s.Rect.Dx() * s.Rect.Dy()

				_, dup := seen[s.Key()]
				assert.False(t, dup, s.Key())
				seen[s.Key()] = struct{}{}

				// Every pixel maps back to the tile the segment claims
				for _, p := range []image.Point{s.Rect.Min, s.Rect.Max.Sub(image.Pt(1, 1))} {
					ax := table.origin.PixelX + p.X
					ay := table.origin.PixelY + p.Y
					assert.Equal(t, table.origin.TileX+ax/table.size, s.Tile.X)
					assert.Equal(t, table.origin.TileY+ay/table.size, s.Tile.Y)
				}
				assert.Equal(t, (table.origin.PixelX+s.Rect.Min.X)%table.size, s.Offset.X)
				assert.Equal(t, (table.origin.PixelY+s.Rect.Min.Y)%table.size, s.Offset.Y)
				assert.LessOrEqual(t, s.Offset.X+s.Rect.Dx(), table.size)
				assert.LessOrEqual(t, s.Offset.Y+s.Rect.Dy(), table.size)
			}
			assert.Equal(t, table.width*table.height, area)
		})
	}
}

func TestDecomposeEmpty(t *testing.T) {
	assert.Empty(t, Decompose(0, 10, Coords{}, DefaultSize))
	assert.Empty(t, Decompose(10, 0, Coords{}, DefaultSize))
}

func TestDecomposeSinglePixel(t *testing.T) {
	segments := Decompose(1, 1, Coords{TileX: 1, TileY: 1, PixelX: 999, PixelY: 999}, DefaultSize)

	require.Len(t, segments, 1)
	assert.Equal(t, image.Rect(0, 0, 1, 1), segments[0].Rect)
	assert.Equal(t, "0001,0001,999,999", segments[0].Key())

	segments = Decompose(2, 1, Coords{PixelX: 999}, DefaultSize)
	require.Len(t, segments, 2)
	assert.Equal(t, "0000,0000,999,000", segments[0].Key())
	assert.Equal(t, "0001,0000,000,000", segments[1].Key())
}

func TestKey(t *testing.T) {
	k := Key{TileX: 1, TileY: 22, X: 3, Y: 444}
	assert.Equal(t, "0001,0022,003,444", k.String())
	assert.Equal(t, "0001,0022", k.Prefix())

	p, err := ParseKey("0001,0022,003,444")
	require.NoError(t, err)
	assert.Equal(t, k, p)

	for _, s := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,-4"} {
		_, err := ParseKey(s)
		assert.Error(t, err, s)
	}
}

func TestCoords(t *testing.T) {
	c, err := ParseCoords("1, 2, 300, 400")
	require.NoError(t, err)
	assert.Equal(t, Coords{1, 2, 300, 400}, c)
	assert.Equal(t, "1, 2, 300, 400", c.String())

	for _, s := range []string{"", "1,2,3", "1,2,3,x", "1,2,-3,4"} {
		_, err := ParseCoords(s)
		assert.Error(t, err, s)
	}
}
