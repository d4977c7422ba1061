package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/ppm"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(fs, stdout)
		return nil
	}
	if opts.list {
		return listScenes(opts.scenesDir, stdout)
	}

	logger := renderer.NewWriterLogger(stderr)

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	width, height := selectedScene.ImageSize()

	sampling := selectedScene.SamplingConfig
	if opts.spp > 0 {
		sampling.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		sampling.MaxDepth = opts.depth
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, width, height, sampling)
	if err != nil {
		return err
	}

	logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d\n",
		raytracer.Width(), raytracer.Height(), raytracer.Config().SamplesPerPixel, raytracer.Config().MaxDepth)

	startTime := time.Now()
	var img *image.RGBA
	var stats renderer.RenderStats
	if opts.parallel {
		img, stats, err = raytracer.RenderParallel(context.Background(), renderer.ParallelConfig{
			TileSize:   opts.tileSize,
			NumWorkers: opts.workers,
		}, logger)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	} else {
		img, stats = raytracer.Render(core.NewSeededSampler(opts.seed))
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Pixels: %d, samples: %d (%.1f per pixel), average luminance %.3f\n",
		stats.TotalPixels, stats.TotalSamples, stats.AverageSamples, renderer.CalculateAverageLuminance(img))

	if err := writeImage(img, opts.out, stdout); err != nil {
		return err
	}
	if opts.out != "" {
		logger.Printf("Render saved as %s\n", opts.out)
	}
	return nil
}

// createScene resolves the scene flags and applies width and aspect ratio overrides
func createScene(opts *options) (*scene.Scene, error) {
	override := renderer.CameraConfig{
		Width:       opts.width,
		AspectRatio: opts.ar,
	}

	if opts.config != "" {
		s, err := scene.LoadJSON(opts.config)
		if err != nil {
			return nil, err
		}
		if err := s.OverrideCamera(override); err != nil {
			return nil, err
		}
		return s, nil
	}

	return scene.Create(opts.scene, override)
}

// writeImage encodes img by the extension of path, or as PPM to stdout when path is empty
func writeImage(img image.Image, path string, stdout io.Writer) error {
	if path == "" {
		return ppm.Encode(stdout, img)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".png") {
		err = png.Encode(file, img)
	} else {
		err = ppm.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return file.Close()
}

func listScenes(dir string, w io.Writer) error {
	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-24s %s", info.ID, info.Name)
		if info.Description != "" {
			fmt.Fprintf(w, " - %s", info.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.json  Scene file")
}
