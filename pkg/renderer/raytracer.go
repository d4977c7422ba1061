package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance, suppressing self-intersection of scattered rays
const ShadowAcneEpsilon = 0.001

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int, config SamplingConfig) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene.GetCamera() == nil {
		return nil, fmt.Errorf("scene has no camera")
	}
	if scene.GetWorld() == nil {
		return nil, fmt.Errorf("scene has no world")
	}
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: config,
	}, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig { return rt.config }

// BackgroundColor returns the sky gradient for a ray that escapes the scene
func BackgroundColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]: white at the bottom, sky blue at the top
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Lerp(skyTop, t)
}

// RayColor returns the color carried back along r after at most depth bounces.
// The bounce chain is unrolled into a loop that carries the product of attenuations.
func RayColor(r core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(r, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(BackgroundColor(r))
		}

		scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
		if !didScatter {
			return core.Vec3{} // absorbed
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce budget exhausted
	return core.Vec3{}
}

// normalizedCoord maps a jittered pixel index onto [0,1] across an axis of size pixels
func normalizedCoord(pixel int, jitter float64, size int) float64 {
	if size <= 1 {
		return 0.5
	}
	return (float64(pixel) + jitter) / float64(size-1)
}

// SamplePixel accumulates SamplesPerPixel jittered samples for pixel (i, j) into ps.
// j counts scanlines from the bottom of the image.
func (rt *Raytracer) SamplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := normalizedCoord(i, jitter.X, rt.width)
		t := normalizedCoord(j, jitter.Y, rt.height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(RayColor(ray, world, rt.config.MaxDepth, sampler))
	}
}

// RenderBounds renders the pixels inside bounds into img.
// bounds uses image coordinates (row 0 is the top scanline); img must cover the full frame.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA, sampler core.Sampler) RenderStats {
	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			rt.SamplePixel(x, j, &ps, sampler)
			img.SetRGBA(x, y, ToPixel(ps.GetColor()))
			stats.AddPixel(ps.SampleCount)
		}
	}

	return stats
}

// Render renders the whole frame on the calling goroutine
func (rt *Raytracer) Render(sampler core.Sampler) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := rt.RenderBounds(img.Bounds(), img, sampler)
	return img, stats
}
