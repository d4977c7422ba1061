// Package ppm writes images in the plain-text PPM (P3) format.
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// MaxValue is the maximum channel value written in the header
const MaxValue = 255

// Encode writes img to w as a P3 image: a header followed by one
// "r g b" line per pixel, rows top to bottom, columns left to right.
func Encode(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", bounds.Dx(), bounds.Dy(), MaxValue); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}
