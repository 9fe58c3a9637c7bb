package core

import "math"

// Color is an unclamped linear radiance or attenuation value
type Color struct {
	R, G, B float64
}

// RGB is a tone-mapped pixel ready for output
type RGB struct {
	R, G, B uint16
}

var (
	// Black absorbs everything
	Black = Color{0, 0, 0}
	// White passes everything through
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise product, used for attenuation
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// IsBlack reports whether all channels are exactly zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Luminance returns the perceptual luminance of the color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Write averages an accumulated sum over sampleCount samples, applies
// square-root gamma and scales to [0, 255]. Channels are not clamped: an
// average above 1 yields values above 255.
func (c Color) Write(sampleCount int) RGB {
	scale := 1.0 / float64(sampleCount)
	return RGB{
		R: uint16(math.Sqrt(scale*c.R) * 255.0),
		G: uint16(math.Sqrt(scale*c.G) * 255.0),
		B: uint16(math.Sqrt(scale*c.B) * 255.0),
	}
}
