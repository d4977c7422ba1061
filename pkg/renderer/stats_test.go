package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

func TestCalculateAverageLuminance_Fixtures(t *testing.T) {
	gray := uint8(128)

	tests := []struct {
		name     string
		img      *image.RGBA
		expected float64
	}{
		{"empty", image.NewRGBA(image.Rectangle{}), 0},
		{"uniform gray", fillRGBA(image.Rect(0, 0, 3, 2), color.RGBA{gray, gray, gray, 255}), 128.0 / 255.0},
		{"pure green", fillRGBA(image.Rect(0, 0, 1, 1), color.RGBA{0, 255, 0, 255}), 0.7152},
		{"offset bounds", fillRGBA(image.Rect(5, 5, 7, 6), color.RGBA{255, 255, 255, 255}), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAverageLuminance(tt.img)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestCalculateAverageLuminance_SkyFrame(t *testing.T) {
	width, height := 4, 6
	camera := mustCamera(t, CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: float64(width) / float64(height),
		VFov:        90.0,
	})
	scene := MockScene{camera: camera, world: geometry.NewHittableList()}

	rt, err := NewRaytracer(scene, width, height, SamplingConfig{SamplesPerPixel: 1, MaxDepth: 1})
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}
	img, _ := rt.Render(zeroSampler{})

	// Every pixel lies between the gamma encoded horizon white and zenith blue
	zenith := ToPixel(skyTop)
	lower := (0.2126*float64(zenith.R) + 0.7152*float64(zenith.G) + 0.0722*float64(zenith.B)) / 255.0
	lum := CalculateAverageLuminance(img)
	if lum <= lower || lum >= 1 {
		t.Errorf("Sky luminance %f should lie in (%f, 1)", lum, lower)
	}

	// The gradient darkens toward the top of the frame
	top := CalculateAverageLuminance(img.SubImage(image.Rect(0, 0, width, 1)).(*image.RGBA))
	bottom := CalculateAverageLuminance(img.SubImage(image.Rect(0, height-1, width, height)).(*image.RGBA))
	if top >= bottom {
		t.Errorf("Top row luminance %f should be below bottom row %f", top, bottom)
	}
}

func fillRGBA(bounds image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
