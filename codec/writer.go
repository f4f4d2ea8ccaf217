package codec

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Encode writes m to w as a PNG.
func Encode(w io.Writer, m image.Image) error {
	return encoder.Encode(w, m)
}

// EncodeBytes returns m encoded as a PNG.
func EncodeBytes(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Encoder turns a rendered tile into transportable bytes.
type Encoder interface {
	Encode(m image.Image) ([]byte, error)
}

// EncoderFunc adapts an ordinary function to the Encoder interface.
type EncoderFunc func(image.Image) ([]byte, error)

// Encode calls f(m).
func (f EncoderFunc) Encode(m image.Image) ([]byte, error) {
	return f(m)
}

// PNG encodes tiles with EncodeBytes.
var PNG Encoder = EncoderFunc(EncodeBytes)
