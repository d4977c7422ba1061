package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the aggregate of all scene objects
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// ImageSize returns the pixel dimensions implied by the camera configuration
func (s *Scene) ImageSize() (width, height int) {
	return s.CameraConfig.Width, s.CameraConfig.ImageHeight()
}

// OverrideCamera rebuilds the camera with every non-zero field of override applied
func (s *Scene) OverrideCamera(override renderer.CameraConfig) error {
	config := renderer.MergeCameraConfig(s.CameraConfig, override)
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}
	s.Camera = camera
	s.CameraConfig = config
	return nil
}

// newScene builds a scene from a default camera configuration and optional overrides
func newScene(defaults renderer.CameraConfig, overrides []renderer.CameraConfig, sampling renderer.SamplingConfig) (*Scene, error) {
	cameraConfig := defaults
	if len(overrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaults, overrides[0])
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	if err := sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}

	return &Scene{
		Camera:         camera,
		World:          geometry.NewHittableList(),
		SamplingConfig: sampling,
		CameraConfig:   cameraConfig,
	}, nil
}
