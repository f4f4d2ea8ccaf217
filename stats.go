package bluemarble

import (
	"context"
	"sync"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/palette"
	"go.uber.org/zap"
)

// Statistics are the pixel counts of a whole template image.
type Statistics struct {
	PixelCount         int
	RequiredPixelCount int
	MarkerPixelCount   int
	Counts             map[palette.Key]int
	// Degraded is set when the pixels could not be inspected. Required then
	// equals PixelCount and Counts is empty.
	Degraded bool
}

type stripeCount struct {
	required int
	marker   int
	counts   map[palette.Key]int
}

func (e *Engine) countStripe(ctx context.Context, buf codec.PixelBuffer, minY, maxY int, sc *stripeCount) {
	b := buf.Bounds()
	for y := minY; y < maxY; y++ {
		if ctx.Err() != nil {
			return
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			class, key := e.registry.Classify(buf.NRGBAAt(x, y))
			switch class {
			case palette.Ignored:
				continue
			case palette.MarkerPixel:
				sc.marker++
			}
			sc.required++
			sc.counts[key]++
		}
	}
}

// Statistics classifies every pixel of buf. The rows are split into stripes
// counted concurrently and summed once every stripe has finished.
func (e *Engine) Statistics(ctx context.Context, buf codec.PixelBuffer) (Statistics, error) {
	b := buf.Bounds()
	s := Statistics{
		PixelCount: b.Dx() * b.Dy(),
		Counts:     make(map[palette.Key]int),
	}
	if s.PixelCount == 0 {
		return s, ctx.Err()
	}

	if e.maxInspect > 0 && s.PixelCount > e.maxInspect {
		e.logger.Warn("image too large to inspect, pixel counts are approximate",
			zap.Int("pixels", s.PixelCount),
			zap.Int("limit", e.maxInspect))
		s.RequiredPixelCount = s.PixelCount
		s.Degraded = true
		return s, nil
	}

	stripes := e.workers
	if stripes > b.Dy() {
		stripes = b.Dy()
	}
	rows := (b.Dy() + stripes - 1) / stripes

	partial := make([]stripeCount, stripes)
	var wg sync.WaitGroup
	for i := range partial {
		minY := b.Min.Y + i*rows
		maxY := minY + rows
		if maxY > b.Max.Y {
			maxY = b.Max.Y
		}
		partial[i].counts = make(map[palette.Key]int)
		wg.Add(1)
		go func(sc *stripeCount) {
			defer wg.Done()
			e.countStripe(ctx, buf, minY, maxY, sc)
		}(&partial[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Statistics{}, err
	}

	for _, sc := range partial {
		s.RequiredPixelCount += sc.required
		s.MarkerPixelCount += sc.marker
		for k, n := range sc.counts {
			s.Counts[k] += n
		}
	}

	return s, nil
}
