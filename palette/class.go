package palette

import "image/color"

// Class is the outcome of classifying a single pixel.
type Class int

const (
	// Ignored pixels are fully transparent and not counted.
	Ignored Class = iota
	// MarkerPixel pixels use the Marker colour.
	MarkerPixel
	// Exact pixels match a literal palette colour.
	Exact
	// Other pixels are opaque and outside the palette.
	Other
)

func (c Class) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case MarkerPixel:
		return "marker"
	case Exact:
		return "exact"
	}
	return "other"
}

// Classify buckets a single pixel. The key is only meaningful when the class
// is not Ignored.
func (r *Registry) Classify(c color.NRGBA) (Class, Key) {
	switch rgb := colorOf(c); {
	case c.A == 0:
		return Ignored, Key{}
	case rgb == Marker:
		return MarkerPixel, MarkerKey
	case r.Allowed(ColorKey(rgb)):
		return Exact, ColorKey(rgb)
	}
	return Other, OtherKey
}
