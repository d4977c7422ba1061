package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse sphere resting on a huge ground sphere,
// seen through a pinhole camera with a 4 x 2.25 viewport one unit away.
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        2 * math.Atan(1.125) * 180 / math.Pi, // viewport height 2.25 at distance 1
	}

	s, err := newScene(defaultCameraConfig, cameraOverrides, renderer.DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	// Both spheres share one material
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	s.World.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
	)

	return s, nil
}
