package tile

import (
	"image"
	"image/color"

	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/palette"
)

const (
	// DefaultShredFactor is the default number of output pixels per source
	// pixel along each axis.
	DefaultShredFactor = 3

	// MarkerAlpha is the alpha of the checkerboard drawn over marker pixels.
	MarkerAlpha = 32
)

var (
	checkerDark  = color.NRGBA{0x00, 0x00, 0x00, MarkerAlpha}
	checkerLight = color.NRGBA{0xff, 0xff, 0xff, MarkerAlpha}
)

// Shredder renders template segments for overlay on the canvas. Each source
// pixel becomes a Factor by Factor block in which only the centre pixel is
// visible, so it lands in the middle of the canvas cell it covers. Marker
// pixels become a translucent checkerboard across the whole block.
type Shredder struct {
	// Factor must be odd and at least one.
	Factor int
	// Marker is the colour drawn as a checkerboard.
	Marker palette.Color
	// Registry is consulted when HideOther is set.
	Registry *palette.Registry
	// HideOther drops centre pixels whose colour is not in the palette.
	HideOther bool
}

// NewShredder returns a Shredder with the default factor and marker colour.
func NewShredder(r *palette.Registry) *Shredder {
	return &Shredder{
		Factor:   DefaultShredFactor,
		Marker:   palette.Marker,
		Registry: r,
	}
}

// Render returns the rectangle r of src expanded by the shred factor.
func (s *Shredder) Render(src codec.PixelBuffer, r image.Rectangle) *image.NRGBA {
	f := s.Factor
	centre := f / 2
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx()*f, r.Dy()*f))

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := src.NRGBAAt(r.Min.X+x, r.Min.Y+y)
			rgb := palette.Color{R: c.R, G: c.G, B: c.B}
			marker := c.A != 0 && rgb == s.Marker

			if !marker && s.HideOther && c.A != 0 && s.Registry != nil && !s.Registry.Contains(rgb) {
				continue
			}

			for by := 0; by < f; by++ {
				for bx := 0; bx < f; bx++ {
					dx, dy := x*f+bx, y*f+by
					switch {
					case marker:
						if (dx+dy)%2 == 0 {
							dst.SetNRGBA(dx, dy, checkerDark)
						} else {
							dst.SetNRGBA(dx, dy, checkerLight)
						}
					case bx != centre || by != centre:
						dst.SetNRGBA(dx, dy, color.NRGBA{c.R, c.G, c.B, 0})
					default:
						dst.SetNRGBA(dx, dy, c)
					}
				}
			}
		}
	}

	return dst
}
