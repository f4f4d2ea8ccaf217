package bluemarble

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	red   = color.NRGBA{237, 28, 36, 0xff}
	white = color.NRGBA{255, 255, 255, 0xff}
	odd   = color.NRGBA{1, 2, 3, 0xff}
)

func encodePNG(t *testing.T, m image.Image) *bytes.Reader {
	t.Helper()
	b, err := codec.EncodeBytes(m)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	e, err := New(palette.New(palette.Default), zaptest.NewLogger(t), options...)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	tables := []struct {
		name    string
		options []Option
		err     error
	}{
		{"defaults", nil, nil},
		{"zero tile size", []Option{WithTileSize(0)}, ErrInvalidTileSize},
		{"negative tile size", []Option{WithTileSize(-1)}, ErrInvalidTileSize},
		{"even shred", []Option{WithShredFactor(4)}, ErrInvalidShredFactor},
		{"zero shred", []Option{WithShredFactor(0)}, ErrInvalidShredFactor},
		{"shred of one", []Option{WithShredFactor(1)}, nil},
		{"no workers", []Option{WithWorkers(0)}, nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			e, err := New(nil, nil, table.options...)
			if table.err != nil {
				assert.ErrorIs(t, err, table.err)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, e.Registry())
			assert.GreaterOrEqual(t, e.workers, 1)
		})
	}
}

func TestStatistics(t *testing.T) {
	m := filled(4, 3, red)
	m.SetNRGBA(0, 0, palette.Marker.NRGBA())
	m.SetNRGBA(1, 0, odd)
	m.SetNRGBA(2, 0, color.NRGBA{})
	m.SetNRGBA(3, 0, color.NRGBA{222, 250, 206, 0})
	m.SetNRGBA(0, 1, white)

	for _, workers := range []int{1, 2, 5} {
		e := newEngine(t, WithWorkers(workers))
		s, err := e.Statistics(context.Background(), m)
		require.NoError(t, err)

		assert.Equal(t, 12, s.PixelCount)
		assert.Equal(t, 10, s.RequiredPixelCount)
		assert.Equal(t, 1, s.MarkerPixelCount)
		assert.False(t, s.Degraded)

		sum := 0
		for _, n := range s.Counts {
			sum += n
		}
		assert.Equal(t, s.RequiredPixelCount, sum)
		assert.Equal(t, 1, s.Counts[palette.MarkerKey])
		assert.Equal(t, 1, s.Counts[palette.OtherKey])
		assert.Equal(t, 1, s.Counts[palette.ColorKey(palette.Color{R: 255, G: 255, B: 255})])
		assert.Equal(t, 7, s.Counts[palette.ColorKey(palette.Color{R: 237, G: 28, B: 36})])
	}
}

func TestStatisticsIncremental(t *testing.T) {
	e := newEngine(t)
	m := filled(2, 2, red)

	before, err := e.Statistics(context.Background(), m)
	require.NoError(t, err)

	m.SetNRGBA(0, 0, palette.Marker.NRGBA())
	afterMarker, err := e.Statistics(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, before.MarkerPixelCount+1, afterMarker.MarkerPixelCount)
	assert.Equal(t, before.RequiredPixelCount, afterMarker.RequiredPixelCount)

	m.SetNRGBA(1, 1, odd)
	afterOther, err := e.Statistics(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, before.Counts[palette.OtherKey]+1, afterOther.Counts[palette.OtherKey])
}

func TestStatisticsDegraded(t *testing.T) {
	e := newEngine(t, WithMaxInspectPixels(10))

	s, err := e.Statistics(context.Background(), filled(4, 4, red))
	require.NoError(t, err)

	assert.True(t, s.Degraded)
	assert.Equal(t, 16, s.PixelCount)
	assert.Equal(t, 16, s.RequiredPixelCount)
	assert.Equal(t, 0, s.MarkerPixelCount)
	assert.Empty(t, s.Counts)
}

func TestStatisticsCancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Statistics(ctx, filled(4, 4, red))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateTemplateTilesAligned(t *testing.T) {
	e := newEngine(t)
	tmpl := NewTemplate("", tile.Coords{TileX: 10, TileY: 20})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(2, 2, red)))
	require.NoError(t, err)

	assert.Equal(t, []string{"0010,0020,000,000"}, result.Keys)
	require.Contains(t, result.Tiles, "0010,0020,000,000")
	assert.Equal(t, image.Rect(0, 0, 6, 6), result.Tiles["0010,0020,000,000"].Bounds())
	assert.NotEmpty(t, result.Buffers["0010,0020,000,000"])

	assert.Equal(t, "My template", tmpl.DisplayName)
	assert.Equal(t, 4, tmpl.PixelCount)
	assert.Equal(t, 4, tmpl.RequiredPixelCount)
	assert.True(t, tmpl.Touches(10, 20))
	assert.False(t, tmpl.Touches(11, 20))
	assert.Equal(t, &ColorCount{Count: 4, Enabled: true}, tmpl.Palette[palette.ColorKey(palette.Color{R: 237, G: 28, B: 36})])
}

func TestCreateTemplateTilesStraddling(t *testing.T) {
	e := newEngine(t, WithShredFactor(1))
	tmpl := NewTemplate("wide", tile.Coords{TileX: 0, TileY: 0, PixelX: 500, PixelY: 0})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(1500, 1, red)))
	require.NoError(t, err)

	assert.Equal(t, []string{"0000,0000,500,000", "0001,0000,000,000"}, result.Keys)
	assert.Equal(t, 500, result.Tiles["0000,0000,500,000"].Bounds().Dx())
	assert.Equal(t, 1000, result.Tiles["0001,0000,000,000"].Bounds().Dx())
	assert.Len(t, tmpl.TilePrefixes, 2)
}

func TestCreateTemplateTilesTemplateTileSize(t *testing.T) {
	e := newEngine(t)
	tmpl := NewTemplate("", tile.Coords{PixelX: 3})
	tmpl.TileSize = 4

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(3, 1, red)))
	require.NoError(t, err)
	assert.Equal(t, []string{"0000,0000,003,000", "0001,0000,000,000"}, result.Keys)

	tmpl.TileSize = -1
	_, err = e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(3, 1, red)))
	assert.ErrorIs(t, err, ErrInvalidTileSize)
}

func TestCreateTemplateTilesInvalidCoords(t *testing.T) {
	e := newEngine(t)
	tmpl := NewTemplate("", tile.Coords{PixelX: tile.DefaultSize})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(1, 1, red)))
	assert.ErrorIs(t, err, ErrInvalidCoords)
	assert.Nil(t, result)
}

func TestCreateTemplateTilesDecodeFailure(t *testing.T) {
	e := newEngine(t)
	tmpl := NewTemplate("broken", tile.Coords{})
	before := *tmpl

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrDecode)
	assert.Nil(t, result)
	assert.Equal(t, before, *tmpl)
}

func TestCreateTemplateTilesCancelled(t *testing.T) {
	e := newEngine(t)
	tmpl := NewTemplate("cancelled", tile.Coords{})
	before := *tmpl

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.CreateTemplateTiles(ctx, tmpl, encodePNG(t, filled(2, 2, red)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Equal(t, before, *tmpl)
}

func TestCreateTemplateTilesEncodeFailure(t *testing.T) {
	failed := errors.New("disk full")
	e := newEngine(t, WithTileSize(2), WithWorkers(3), WithEncoder(codec.EncoderFunc(func(image.Image) ([]byte, error) {
		return nil, failed
	})))
	tmpl := NewTemplate("", tile.Coords{})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(8, 8, red)))
	assert.ErrorIs(t, err, failed)
	assert.Nil(t, result)
	assert.Empty(t, tmpl.Palette)
	assert.Empty(t, tmpl.TilePrefixes)
}

func TestCreateTemplateTilesEmptyImage(t *testing.T) {
	e := newEngine(t, WithDecoder(codec.DecoderFunc(func(io.Reader) (codec.PixelBuffer, error) {
		return image.NewNRGBA(image.Rectangle{}), nil
	})))
	tmpl := NewTemplate("", tile.Coords{})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Keys)
	assert.Equal(t, 0, tmpl.PixelCount)
	assert.Empty(t, tmpl.TilePrefixes)
}

func TestCreateTemplateTilesDegraded(t *testing.T) {
	e := newEngine(t, WithMaxInspectPixels(1))
	tmpl := NewTemplate("", tile.Coords{})

	result, err := e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(2, 2, red)))
	require.NoError(t, err)
	assert.Len(t, result.Keys, 1)
	assert.True(t, tmpl.Degraded)
	assert.Equal(t, 4, tmpl.RequiredPixelCount)
	assert.Empty(t, tmpl.Palette)
}

func TestCreateTemplateTilesKeepsEnabled(t *testing.T) {
	grey := palette.Color{R: 100, G: 100, B: 100}
	reg := palette.New([]palette.Entry{
		{ID: palette.IntID(1), Name: "Grey", RGB: grey},
		{ID: palette.IntID(2), Name: "Red", RGB: palette.Color{R: 237, G: 28, B: 36}},
	})
	e, err := New(reg, zaptest.NewLogger(t))
	require.NoError(t, err)

	m := filled(2, 2, grey.NRGBA())
	m.SetNRGBA(1, 1, red)

	tmpl := NewTemplate("grey", tile.Coords{})
	_, err = e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, m))
	require.NoError(t, err)

	k, err := palette.ParseKey("100,100,100")
	require.NoError(t, err)
	require.NoError(t, tmpl.SetEnabled(k, false))
	assert.False(t, tmpl.Enabled(k))
	assert.ErrorIs(t, tmpl.SetEnabled(palette.OtherKey, false), ErrUnknownColor)

	_, err = e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, m))
	require.NoError(t, err)
	assert.Equal(t, &ColorCount{Count: 3, Enabled: false}, tmpl.Palette[k])

	// Red no longer present, so its bucket goes.
	_, err = e.CreateTemplateTiles(context.Background(), tmpl, encodePNG(t, filled(2, 2, grey.NRGBA())))
	require.NoError(t, err)
	assert.Len(t, tmpl.Palette, 1)
	assert.False(t, tmpl.Enabled(k))
}

func TestSortedPalette(t *testing.T) {
	whiteKey := palette.ColorKey(palette.Color{R: 255, G: 255, B: 255})
	counts := make(map[palette.Key]int)
	counts[palette.OtherKey] = 2
	counts[palette.MarkerKey] = 5
	counts[whiteKey] = 2

	tmpl := NewTemplate("", tile.Coords{})
	tmpl.ApplyStatistics(Statistics{Counts: counts})

	rows := tmpl.SortedPalette()
	require.Len(t, rows, 3)
	assert.Equal(t, palette.MarkerKey, rows[0].Key)
	assert.Equal(t, whiteKey, rows[1].Key)
	assert.Equal(t, palette.OtherKey, rows[2].Key)
}

func TestTemplateKey(t *testing.T) {
	tmpl := NewTemplate("", tile.Coords{})
	tmpl.SortID = 3
	tmpl.AuthorID = "abc"
	assert.Equal(t, "3 abc", tmpl.Key())

	tmpl.StorageKey = "custom"
	assert.Equal(t, "custom", tmpl.Key())
}
