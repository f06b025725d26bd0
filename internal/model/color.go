package model

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single 8-bit-per-channel RGB value as sent to the strip.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	Red   = Color{R: 255}
	Green = Color{G: 255}
	Blue  = Color{B: 255}
	White = Color{R: 255, G: 255, B: 255}
)

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hue returns the fully saturated, mid-lightness color for h in [0,1].
func Hue(h float64) Color {
	for h > 1 {
		h -= 1
	}
	for h < 0 {
		h += 1
	}
	r, g, b := colorful.Hsl(h*360, 1.0, 0.5).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Darken subtracts delta from every channel, saturating at zero.
func (c Color) Darken(delta uint8) Color {
	return Color{
		R: subSat(c.R, delta),
		G: subSat(c.G, delta),
		B: subSat(c.B, delta),
	}
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return strings.ToUpper(colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex())
}

// ParseHex accepts "#RRGGBB" (case-insensitive).
func ParseHex(s string) (Color, error) {
	cc, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, err
	}
	r, g, b := cc.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Scale multiplies every channel by b/255.
func (c Color) Scale(b uint8) Color {
	if b == 255 {
		return c
	}
	s := uint16(b)
	return Color{
		R: uint8(uint16(c.R) * s / 255),
		G: uint8(uint16(c.G) * s / 255),
		B: uint8(uint16(c.B) * s / 255),
	}
}

func subSat(v, d uint8) uint8 {
	if v > d {
		return v - d
	}
	return 0
}
