/*
Package convert snaps an arbitrary image onto the site palette so that it can
be used as a template.

Every pixel whose alpha is below the threshold becomes fully transparent and
every other pixel becomes the nearest opaque palette colour. The number of
distinct colours can be limited with a median cut before snapping, and
Floyd-Steinberg error diffusion can be used instead of plain nearest colour
matching.
*/
package convert

import (
	"image"
	"image/color"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/palette"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// DefaultAlphaThreshold is used when Options.AlphaThreshold is zero.
const DefaultAlphaThreshold = 128

// Options controls a conversion.
type Options struct {
	// MaxColors limits the result to at most this many palette colours.
	// Zero means no limit.
	MaxColors int
	// Dither enables Floyd-Steinberg error diffusion.
	Dither bool
	// AlphaThreshold is the lowest alpha kept as an opaque pixel.
	AlphaThreshold uint8
}

func sitePalette(r *palette.Registry) color.Palette {
	var p color.Palette
	if r == nil {
		return p
	}
	for _, c := range r.Colors() {
		p = append(p, c.NRGBA())
	}
	return p
}

// Keep only distinct site colours nearest to each quantized colour
func snapPalette(site, reduced color.Palette) color.Palette {
	seen := make(map[color.Color]struct{})
	var p color.Palette
	for _, c := range reduced {
		s := site.Convert(c)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		p = append(p, s)
	}
	return p
}

// Convert returns m with every opaque pixel replaced by a colour from r.
func Convert(m image.Image, r *palette.Registry, opts Options) *image.NRGBA {
	src := codec.NRGBA(m)
	b := src.Bounds()

	threshold := opts.AlphaThreshold
	if threshold == 0 {
		threshold = DefaultAlphaThreshold
	}

	// Work on a fully opaque copy so translucent pixels quantize by colour
	opaque := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			c.A = 0xff
			opaque.SetNRGBA(x, y, c)
		}
	}

	dst := image.NewNRGBA(b)

	target := sitePalette(r)
	if len(target) == 0 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if src.NRGBAAt(x, y).A >= threshold {
					dst.SetNRGBA(x, y, opaque.NRGBAAt(x, y))
				}
			}
		}
		return dst
	}

	if opts.MaxColors > 0 && opts.MaxColors < len(target) {
		q := quantize.MedianCutQuantizer{}
		target = snapPalette(target, q.Quantize(make(color.Palette, 0, opts.MaxColors), opaque))
	}

	pm := image.NewPaletted(b, target)
	var drawer draw.Drawer = draw.Src
	if opts.Dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(pm, b, opaque, b.Min)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y).A < threshold {
				continue
			}
			dst.Set(x, y, target[pm.ColorIndexAt(x, y)])
		}
	}

	return dst
}
