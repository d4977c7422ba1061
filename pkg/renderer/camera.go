package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	Center        core.Point3 // Camera position (lookfrom)
	LookAt        core.Point3 // Point the camera is looking at
	Up            core.Vec3   // Up direction (usually (0,1,0))
	Width         int         // Image width in pixels
	AspectRatio   float64     // Width / height ratio
	VFov          float64     // Vertical field of view in degrees
	Aperture      float64     // Lens diameter; 0 disables depth of field
	FocusDistance float64     // Distance to the focal plane; 0 means |Center - LookAt|
}

// ImageHeight returns the pixel height implied by the width and aspect ratio
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Validate checks the configuration for values that cannot produce a camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("camera width must be positive, got %d", c.Width)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("camera aspect ratio must be positive and finite, got %f", c.AspectRatio)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("camera vertical field of view must be in (0, 180) degrees, got %f", c.VFov)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("camera aperture must not be negative, got %f", c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("camera focus distance must not be negative, got %f", c.FocusDistance)
	}
	viewDir := c.Center.Subtract(c.LookAt)
	if viewDir.NearZero() {
		return fmt.Errorf("camera center and look-at point must differ, both are %v", c.Center)
	}
	if c.Up.Cross(viewDir).NearZero() {
		return fmt.Errorf("camera up vector %v must not be parallel to the view direction", c.Up)
	}
	return nil
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	var zero core.Vec3
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a thin-lens camera from the configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower-left corner of the viewport
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}
