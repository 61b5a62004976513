package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned for malformed hex colors.
var ErrInvalidColor = errors.New("invalid hex color")

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Face colors used by highlighting.
var (
	ColorSelectedFace = MustHex("#b40808")
	ColorSelectedBox  = MustHex("#f3f3f3")
	ColorMesh         = MustHex("#c0c0c0")
)

// boxPalette colors the six box faces, indexed by face id.
var boxPalette = [6]Color{
	MustHex("#0000ff"), // front: blue
	MustHex("#ff0000"), // back: red
	MustHex("#ffff00"), // right: yellow
	MustHex("#00ff00"), // left: green
	MustHex("#ff00ff"), // top: magenta
	MustHex("#008080"), // bottom: dark cyan
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Hex parses "#rrggbb" or "rrggbb".
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustHex is like Hex but panics on malformed input.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

// NRGBA converts to an 8-bit color for image output.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}
