/*
Package bluemarble turns template images into overlay tiles for a large
tiled pixel canvas.

An Engine decodes a template image, counts its pixels against the site
palette, splits it along the canvas tile grid and renders every segment so
that only the centre of each enlarged source pixel is visible. Templates and
their tiles can be kept in a TemplateDB or exchanged as a metadata bundle.
*/
package bluemarble

import (
	"errors"
	"runtime"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTileSize is returned for a tile size that is not positive.
	ErrInvalidTileSize = errors.New("bluemarble: tile size must be positive")
	// ErrInvalidShredFactor is returned for an even or non-positive shred factor.
	ErrInvalidShredFactor = errors.New("bluemarble: shred factor must be odd and at least 1")
	// ErrInvalidCoords is returned when the pixel offset lies outside the tile.
	ErrInvalidCoords = errors.New("bluemarble: pixel offset outside tile")
	// ErrDecode wraps any failure to decode the template image.
	ErrDecode = errors.New("bluemarble: cannot decode image")
)

// Engine builds template tiles. It holds no per-template state and is safe
// for concurrent use.
type Engine struct {
	registry   *palette.Registry
	logger     *zap.Logger
	decoder    codec.Decoder
	encoder    codec.Encoder
	tileSize   int
	shred      int
	hideOther  bool
	workers    int
	maxInspect int

	shredder *tile.Shredder
}

// Option configures an Engine.
type Option func(*Engine)

// WithTileSize sets the canvas tile size, tile.DefaultSize by default.
func WithTileSize(n int) Option {
	return func(e *Engine) {
		e.tileSize = n
	}
}

// WithShredFactor sets the shred factor, tile.DefaultShredFactor by default.
func WithShredFactor(n int) Option {
	return func(e *Engine) {
		e.shred = n
	}
}

// WithHideOther hides rendered pixels whose colour is not in the palette.
// They are still counted.
func WithHideOther(hide bool) Option {
	return func(e *Engine) {
		e.hideOther = hide
	}
}

// WithWorkers sets how many segments are rendered concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(d codec.Decoder) Option {
	return func(e *Engine) {
		e.decoder = d
	}
}

// WithEncoder replaces the tile encoder.
func WithEncoder(enc codec.Encoder) Option {
	return func(e *Engine) {
		e.encoder = enc
	}
}

// WithMaxInspectPixels limits the size of image whose pixels are counted.
// Larger images are still tiled but their statistics are approximate.
func WithMaxInspectPixels(n int) Option {
	return func(e *Engine) {
		e.maxInspect = n
	}
}

// New returns an Engine classifying against r. A nil registry is treated as
// an empty palette and a nil logger discards everything.
func New(r *palette.Registry, logger *zap.Logger, options ...Option) (*Engine, error) {
	if r == nil {
		r = palette.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		registry: r,
		logger:   logger,
		decoder:  codec.Standard,
		encoder:  codec.PNG,
		tileSize: tile.DefaultSize,
		shred:    tile.DefaultShredFactor,
		workers:  runtime.NumCPU(),
	}
	for _, o := range options {
		o(e)
	}

	if e.tileSize <= 0 {
		return nil, ErrInvalidTileSize
	}
	if e.shred < 1 || e.shred%2 == 0 {
		return nil, ErrInvalidShredFactor
	}
	if e.workers < 1 {
		e.workers = 1
	}

	e.shredder = &tile.Shredder{
		Factor:    e.shred,
		Marker:    palette.Marker,
		Registry:  r,
		HideOther: e.hideOther,
	}

	return e, nil
}

// Registry returns the palette the engine classifies against.
func (e *Engine) Registry() *palette.Registry {
	return e.registry
}
