package scene

import (
	"errors"
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{R: 1, A: 1}},
		{"00ff00", Color{G: 1, A: 1}},
		{"#0000FF", Color{B: 1, A: 1}},
		{"#000000", Color{A: 1}},
	}

	for _, tt := range tests {
		got, err := Hex(tt.in)
		if err != nil {
			t.Errorf("Hex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#fff", "#gg0000", "#ff00001"} {
		if _, err := Hex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Hex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestMustHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHex did not panic on bad input")
		}
	}()
	MustHex("nope")
}

func TestColorString(t *testing.T) {
	for _, s := range []string{"#b40808", "#f3f3f3", "#c0c0c0", "#008080"} {
		if got := MustHex(s).String(); got != s {
			t.Errorf("String() = %s, want %s", got, s)
		}
	}
	if ColorSelectedFace.String() != "#b40808" {
		t.Errorf("selected face color = %s", ColorSelectedFace)
	}
}

func TestBoxPaletteDistinct(t *testing.T) {
	seen := make(map[Color]int)
	for face, c := range boxPalette {
		if prev, ok := seen[c]; ok {
			t.Errorf("faces %d and %d share color %s", prev, face, c)
		}
		if c == ColorSelectedFace || c == ColorSelectedBox {
			t.Errorf("face %d base color collides with a highlight color", face)
		}
		seen[c] = face
	}
}

func TestColorNRGBA(t *testing.T) {
	got := MustHex("#b40808").NRGBA()
	want := color.NRGBA{R: 0xb4, G: 0x08, B: 0x08, A: 0xff}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}
