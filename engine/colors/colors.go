package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Parse reads "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func Parse(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	c := Color{0, 0, 0, 1}
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// Pulse scales the RGB channels of c by a slow sine of t (seconds),
// between 50% and 100% brightness.
func Pulse(c Color, t float32) Color {
	k := 0.75 + 0.25*math32.Sin(t*math32.Pi/2)
	return Color{c[0] * k, c[1] * k, c[2] * k, c[3]}
}
