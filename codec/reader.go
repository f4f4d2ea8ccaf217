package codec

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var errEmpty = errors.New("codec: no image data")

// Decode reads an image from r and returns it as an NRGBA buffer whose
// bounds start at (0, 0).
func Decode(r io.Reader) (*image.NRGBA, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errEmpty
		}
		return nil, fmt.Errorf("codec: %w", err)
	}
	return NRGBA(m), nil
}

// DecodeConfig returns the dimensions and format of an image without decoding
// the pixels.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	c, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("codec: %w", err)
	}
	return c, format, nil
}

// NRGBA returns m as an NRGBA buffer with its top-left corner at (0, 0). An
// *image.NRGBA already in that form is returned as is.
func NRGBA(m image.Image) *image.NRGBA {
	if nm, ok := m.(*image.NRGBA); ok && nm.Rect.Min == (image.Point{}) {
		return nm
	}

	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}
