package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestToPixel(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Color
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white clamps to 255", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"overexposed clamps to 255", core.NewVec3(4, 9, 100), color.RGBA{255, 255, 255, 255}},
		{"gamma 2 quarter", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{128, 128, 128, 255}},
		{"per channel", core.NewVec3(0.0625, 0.25, 0), color.RGBA{64, 128, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToPixel(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().Equals(core.Vec3{}) {
		t.Errorf("Empty pixel should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if !ps.GetColor().Equals(core.NewVec3(0.5, 0.5, 0)) {
		t.Errorf("Expected average (0.5, 0.5, 0), got %v", ps.GetColor())
	}
}

func TestRenderStatsMerge(t *testing.T) {
	var a, b RenderStats
	a.AddPixel(4)
	a.AddPixel(4)
	b.AddPixel(10)

	a.Merge(b)
	if a.TotalPixels != 3 || a.TotalSamples != 18 || a.AverageSamples != 6 {
		t.Errorf("Unexpected merged stats %+v", a)
	}
}
