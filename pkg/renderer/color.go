package renderer

import (
	"image/color"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ToPixel converts an averaged linear color to an 8-bit display color.
// Gamma 2 is applied by square root, each channel is clamped to [0, 0.999]
// and scaled by 256 with truncation, so the result always lies in [0, 255].
func ToPixel(c core.Color) color.RGBA {
	c = c.Sqrt().Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
		A: 255,
	}
}
