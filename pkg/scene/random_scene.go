package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// DefaultRandomSceneSeed seeds the layout of the built-in random scene
const DefaultRandomSceneSeed = 42

// NewRandomScene creates a field of small random spheres around three large ones.
// The layout is fully determined by seed.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	s, err := newScene(defaultCameraConfig, cameraOverrides, renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Color {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// Small spheres share a single glass material
	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < 0.95:
				mat = material.NewMetal(randomColor(0.5, 1), 0.5*random.Float64())
			default:
				mat = glass
			}
			s.World.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	s.World.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s, nil
}
