/*
Package codec converts between raw image bytes and the pixel buffers used to
build template tiles.

Source images may be PNG, JPEG, GIF, WebP or BMP and are always normalised to
a non-premultiplied RGBA buffer anchored at (0, 0) so that colour values can
be compared exactly. Rendered tiles are written as PNG.
*/
package codec

import (
	"image"
	"image/color"
	"io"
)

// PixelBuffer is the minimal read access needed to classify and render a
// template. *image.NRGBA satisfies it.
type PixelBuffer interface {
	Bounds() image.Rectangle
	NRGBAAt(x, y int) color.NRGBA
}

// Decoder turns raw image bytes into a PixelBuffer.
type Decoder interface {
	Decode(r io.Reader) (PixelBuffer, error)
}

// DecoderFunc adapts an ordinary function to the Decoder interface.
type DecoderFunc func(io.Reader) (PixelBuffer, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (PixelBuffer, error) {
	return f(r)
}

// Standard decodes every format registered with the image package.
var Standard Decoder = DecoderFunc(func(r io.Reader) (PixelBuffer, error) {
	return Decode(r)
})
