package geom

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Hue returns the HSL hue of c in degrees.
func (c Color) Hue() float64 {
	h, _, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return h
}

// RainbowColor returns the color of solid i out of n: a fully saturated HSL
// ramp with hue i/n*360 degrees and 50% lightness.
func RainbowColor(i, n int) (Color, error) {
	if n <= 0 || i < 0 || i >= n {
		return Color{}, domainErr("rainbow color", ErrColorIndex, "index %d of %d", i, n)
	}
	c := colorful.Hsl(float64(i)/float64(n)*360, 1, 0.5)
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// Palette returns RainbowColor for every index in [0, n).
func Palette(n int) []Color {
	out := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		c, _ := RainbowColor(i, n)
		out = append(out, c)
	}
	return out
}
