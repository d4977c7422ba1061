package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewMaterialsScene creates a row of diffuse, glass and metal spheres on a ground sphere.
// The glass sphere is hollow: a negative radius inner sphere flips its normals.
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	s, err := newScene(defaultCameraConfig, cameraOverrides, renderer.DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	diffuseBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.World.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, diffuseBlue),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	return s, nil
}
