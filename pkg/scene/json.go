package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Material type names accepted in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// FileConfig is the JSON description of a scene
type FileConfig struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// CameraCfg holds optional camera fields; omitted fields keep the default camera's values
type CameraCfg struct {
	Center        []float64 `json:"center,omitempty"`
	LookAt        []float64 `json:"lookAt,omitempty"`
	Up            []float64 `json:"up,omitempty"`
	Width         int       `json:"width,omitempty"`
	AspectRatio   float64   `json:"aspectRatio,omitempty"`
	VFov          float64   `json:"vfov,omitempty"`
	Aperture      float64   `json:"aperture,omitempty"`
	FocusDistance float64   `json:"focusDistance,omitempty"`
}

type SamplingCfg struct {
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

// MaterialCfg describes one named material. Albedo applies to lambertian and metal,
// Fuzz to metal and RefractiveIndex to dielectric.
type MaterialCfg struct {
	Type            string    `json:"type"`
	Albedo          []float64 `json:"albedo,omitempty"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractiveIndex float64   `json:"refractiveIndex,omitempty"`
}

type SphereCfg struct {
	Center   []float64 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

func defaultFileCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

func parseVec3(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// Build validates the camera fields and applies them over the default camera
func (c CameraCfg) Build() (renderer.CameraConfig, error) {
	config := defaultFileCamera()

	vectors := []struct {
		name   string
		values []float64
		target *core.Vec3
	}{
		{"camera.center", c.Center, &config.Center},
		{"camera.lookAt", c.LookAt, &config.LookAt},
		{"camera.up", c.Up, &config.Up},
	}
	for _, v := range vectors {
		if v.values == nil {
			continue
		}
		vec, err := parseVec3(v.name, v.values)
		if err != nil {
			return config, err
		}
		*v.target = vec
	}

	if c.Width != 0 {
		config.Width = c.Width
	}
	if c.AspectRatio != 0 {
		config.AspectRatio = c.AspectRatio
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	config.Aperture = c.Aperture
	config.FocusDistance = c.FocusDistance

	return config, config.Validate()
}

// Build applies the sampling fields over the defaults. Omitted (zero) fields keep the default.
func (s SamplingCfg) Build() (renderer.SamplingConfig, error) {
	config := renderer.DefaultSamplingConfig()
	if s.SamplesPerPixel < 0 {
		return config, fmt.Errorf("sampling.samplesPerPixel must be positive, got %d", s.SamplesPerPixel)
	}
	if s.MaxDepth < 0 {
		return config, fmt.Errorf("sampling.maxDepth must be positive, got %d", s.MaxDepth)
	}
	if s.SamplesPerPixel != 0 {
		config.SamplesPerPixel = s.SamplesPerPixel
	}
	if s.MaxDepth != 0 {
		config.MaxDepth = s.MaxDepth
	}
	return config, config.Validate()
}

// Build validates and constructs the material
func (m MaterialCfg) Build() (material.Material, error) {
	switch m.Type {
	case MaterialLambertian:
		albedo, err := parseVec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case MaterialMetal:
		albedo, err := parseVec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case MaterialDielectric:
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index must be positive, got %f", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// Build constructs the scene. Spheres naming the same material share one instance.
func (fc FileConfig) Build() (*Scene, error) {
	cameraConfig, err := fc.Camera.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	sampling, err := fc.Sampling.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid sampling: %w", err)
	}

	s, err := newScene(cameraConfig, nil, sampling)
	if err != nil {
		return nil, err
	}

	// Build in sorted order so the first reported error is stable
	names := make([]string, 0, len(fc.Materials))
	for name := range fc.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mat, err := fc.Materials[name].Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sc := range fc.Spheres {
		center, err := parseVec3("center", sc.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if sc.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		s.World.Add(geometry.NewSphere(center, sc.Radius, mat))
	}

	return s, nil
}

// ParseJSON decodes a scene description from r and builds it
func ParseJSON(r io.Reader) (*Scene, error) {
	var fc FileConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return fc.Build()
}

// LoadJSON reads and builds the scene file at path
func LoadJSON(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
