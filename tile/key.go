package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Key addresses a rendered segment: its tile and its offset within the tile.
type Key struct {
	TileX, TileY int
	X, Y         int
}

func (k Key) String() string {
	return fmt.Sprintf("%04d,%04d,%03d,%03d", k.TileX, k.TileY, k.X, k.Y)
}

// Prefix returns the "tttt,tttt" part of the key.
func (k Key) Prefix() string {
	return Prefix(k.TileX, k.TileY)
}

// Prefix formats a tile coordinate the way it appears at the start of a key.
func Prefix(x, y int) string {
	return fmt.Sprintf("%04d,%04d", x, y)
}

// ParseKey parses a "tttt,tttt,ppp,ppp" tile key.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Key{}, fmt.Errorf("tile: invalid key %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Key{}, fmt.Errorf("tile: invalid key %q", s)
		}
		v[i] = n
	}
	return Key{v[0], v[1], v[2], v[3]}, nil
}
