package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type options struct {
	scene     string
	config    string
	width     int
	ar        float64 // 0 keeps the scene's aspect ratio
	spp       int
	depth     int
	workers   int
	tileSize  int
	parallel  bool
	seed      int64
	out       string
	scenesDir string
	list      bool
	help      bool
}

func parseFlags(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{}
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.config, "config", "", "Path to a JSON scene file (overrides -scene)")
	fs.IntVar(&opts.width, "width", 0, "Render width in pixels (default: scene width)")
	ar := fs.String("ar", "", "Render aspect ratio in width:height format, e.g. \"16:9\" (default: scene aspect ratio)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (default: scene setting)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (default: scene setting)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for the single-goroutine render")
	fs.BoolVar(&opts.parallel, "parallel", false, "Render tiles on a worker pool; each tile seeds its own random stream")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.tileSize, "tile", 32, "Tile size in pixels for parallel rendering")
	fs.StringVar(&opts.out, "out", "", "Output file; .png writes PNG, anything else PPM (default: PPM on stdout)")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched for JSON scene files by -list")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	if opts.width < 0 {
		return nil, fs, fmt.Errorf("render width must not be negative, got %d", opts.width)
	}
	if opts.spp < 0 {
		return nil, fs, fmt.Errorf("samples per pixel must not be negative, got %d", opts.spp)
	}
	if opts.depth < 0 {
		return nil, fs, fmt.Errorf("max depth must not be negative, got %d", opts.depth)
	}
	if opts.workers < 0 {
		return nil, fs, fmt.Errorf("worker count must not be negative, got %d", opts.workers)
	}
	if opts.tileSize <= 0 {
		return nil, fs, fmt.Errorf("tile size must be positive, got %d", opts.tileSize)
	}

	if *ar != "" {
		parsed, err := parseAspectRatio(*ar)
		if err != nil {
			return nil, fs, fmt.Errorf("aspect ratio %q could not be parsed: %w", *ar, err)
		}
		opts.ar = parsed
	}

	return opts, fs, nil
}

func parseAspectRatio(ar string) (float64, error) {
	operands := strings.Split(ar, ":")
	if len(operands) != 2 {
		return 0, fmt.Errorf("invalid format, expected \"width:height\"")
	}

	width, err := strconv.ParseFloat(operands[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid width value %q", operands[0])
	}
	height, err := strconv.ParseFloat(operands[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid height value %q", operands[1])
	}

	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("width and height must be positive")
	}

	return width / height, nil
}
