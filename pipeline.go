package bluemarble

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/tile"
	"go.uber.org/zap"
)

// TileOutput is one rendered segment.
type TileOutput struct {
	Key     string
	Segment tile.Segment
	Image   *image.NRGBA
	Data    []byte
}

// Result is everything produced for a template. Keys lists the tile keys
// by tile row, then tile column.
type Result struct {
	Keys    []string
	Tiles   map[string]*image.NRGBA
	Buffers map[string][]byte
	Stats   Statistics
}

type job struct {
	index   int
	segment tile.Segment
}

type rendered struct {
	index  int
	output TileOutput
}

func (e *Engine) emitSegments(ctx context.Context, segments []tile.Segment) (<-chan job, <-chan error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, s := range segments {
			select {
			case out <- job{i, s}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (e *Engine) segmentWorker(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup, buf codec.PixelBuffer, in <-chan job, out chan<- rendered) <-chan error {
	errc := make(chan error, 1)
	origin := buf.Bounds().Min
	go func() {
		defer close(errc)
		defer wg.Done()
		for j := range in {
			key := j.segment.Key()

			m := e.shredder.Render(buf, j.segment.Rect.Add(origin))
			b, err := e.encoder.Encode(m)
			if err != nil {
				errc <- fmt.Errorf("bluemarble: encode tile %s: %w", key, err)
				cancel()
				return
			}

			select {
			case out <- rendered{j.index, TileOutput{Key: key, Segment: j.segment, Image: m, Data: b}}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

// waitForPipeline returns the first error that is not just the result of
// the pipeline being cancelled, falling back to the cancellation itself.
func waitForPipeline(errs ...<-chan error) error {
	var cancelled error
	errc := mergeErrors(errs...)
	for err := range errc {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if cancelled == nil {
				cancelled = err
			}
		default:
			for range errc {
			}
			return err
		}
	}
	return cancelled
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (e *Engine) renderSegments(ctx context.Context, buf codec.PixelBuffer, segments []tile.Segment) ([]TileOutput, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var errcList []<-chan error

	jobs, errc := e.emitSegments(ctx, segments)
	errcList = append(errcList, errc)

	workers := e.workers
	if workers > len(segments) {
		workers = len(segments)
	}

	out := make(chan rendered)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		errcList = append(errcList, e.segmentWorker(ctx, cancel, &wg, buf, jobs, out))
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	outputs := make([]TileOutput, len(segments))
	for r := range out {
		outputs[r.index] = r.output
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (e *Engine) templateTileSize(t *Template) (int, error) {
	switch {
	case t.TileSize < 0:
		return 0, ErrInvalidTileSize
	case t.TileSize == 0:
		return e.tileSize, nil
	}
	return t.TileSize, nil
}

// CreateTemplateTiles decodes the image read from r, counts its pixels and
// renders one tile per canvas tile it covers. On success t is updated with
// the counts and tile prefixes; on any error, including ctx being cancelled,
// t is left unchanged and no result is returned.
func (e *Engine) CreateTemplateTiles(ctx context.Context, t *Template, r io.Reader) (*Result, error) {
	size, err := e.templateTileSize(t)
	if err != nil {
		return nil, err
	}
	c := t.Coords
	if c.TileX < 0 || c.TileY < 0 || c.PixelX < 0 || c.PixelY < 0 || c.PixelX >= size || c.PixelY >= size {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoords, c)
	}

	logger := e.logger.With(zap.String("template", t.Key()))

	buf, err := e.decoder.Decode(r)
	if err != nil {
		logger.Error("decode", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := buf.Bounds()
	logger.Debug("decoded template", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))

	stats, err := e.Statistics(ctx, buf)
	if err != nil {
		return nil, err
	}

	segments := tile.Decompose(b.Dx(), b.Dy(), c, size)
	logger.Debug("decomposed template", zap.Int("segments", len(segments)))

	outputs, err := e.renderSegments(ctx, buf, segments)
	if err != nil {
		logger.Error("render", zap.Error(err))
		return nil, err
	}

	result := &Result{
		Keys:    make([]string, 0, len(outputs)),
		Tiles:   make(map[string]*image.NRGBA, len(outputs)),
		Buffers: make(map[string][]byte, len(outputs)),
		Stats:   stats,
	}
	prefixes := make(map[string]struct{})
	for _, o := range outputs {
		result.Keys = append(result.Keys, o.Key)
		result.Tiles[o.Key] = o.Image
		result.Buffers[o.Key] = o.Data
		prefixes[o.Segment.Prefix()] = struct{}{}
	}

	t.TileSize = size
	t.ApplyStatistics(stats)
	t.TilePrefixes = prefixes

	logger.Info("created template tiles",
		zap.Int("tiles", len(result.Keys)),
		zap.Int("pixels", stats.PixelCount),
		zap.Int("required", stats.RequiredPixelCount),
		zap.Int("marker", stats.MarkerPixelCount),
		zap.Bool("degraded", stats.Degraded))

	return result, nil
}
