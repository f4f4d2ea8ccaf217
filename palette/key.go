package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type kind uint8

const (
	kindColor kind = iota
	kindMarker
	kindOther
)

const (
	markerText = "#deface"
	otherText  = "other"
)

var errBadKey = errors.New("palette: invalid key")

// Key identifies a classification bucket: a literal colour, the marker or
// other. Keys are comparable and may be used as map keys.
type Key struct {
	kind kind
	rgb  Color
}

var (
	// MarkerKey is the bucket for pixels painted with the Marker colour.
	MarkerKey = Key{kind: kindMarker}
	// OtherKey is the bucket for opaque colours outside the palette.
	OtherKey = Key{kind: kindOther}
)

// ColorKey returns the literal key for c.
func ColorKey(c Color) Key {
	return Key{kind: kindColor, rgb: c}
}

// IsMarker reports whether k is MarkerKey.
func (k Key) IsMarker() bool {
	return k.kind == kindMarker
}

// IsOther reports whether k is OtherKey.
func (k Key) IsOther() bool {
	return k.kind == kindOther
}

// Color returns the colour of a literal key.
func (k Key) Color() (Color, bool) {
	switch k.kind {
	case kindColor:
		return k.rgb, true
	case kindMarker:
		return Marker, false
	}
	return Color{}, false
}

func (k Key) String() string {
	switch k.kind {
	case kindMarker:
		return markerText
	case kindOther:
		return otherText
	}
	return fmt.Sprintf("%d,%d,%d", k.rgb.R, k.rgb.G, k.rgb.B)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) error {
	p, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = p
	return nil
}

// ParseKey parses the text form of a key. The literal form of the marker
// colour, "222,250,206", parses as MarkerKey.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case markerText:
		return MarkerKey, nil
	case otherText:
		return OtherKey, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", errBadKey, s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q", errBadKey, s)
		}
		v[i] = uint8(n)
	}

	c := Color{v[0], v[1], v[2]}
	if c == Marker {
		return MarkerKey, nil
	}
	return ColorKey(c), nil
}
