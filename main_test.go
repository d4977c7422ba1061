package main

import (
	"bytes"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		input       string
		expected    float64
		expectError bool
	}{
		{"16:9", 16.0 / 9.0, false},
		{"1:1", 1, false},
		{"2.35:1", 2.35, false},
		{"16x9", 0, true},
		{"16:9:1", 0, true},
		{"a:9", 0, true},
		{"16:b", 0, true},
		{"16:0", 0, true},
		{"-4:3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAspectRatio(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, got %f", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	opts, _, err := parseFlags([]string{"-scene", "materials", "-width", "120", "-ar", "4:3", "-spp", "3", "-parallel"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.scene != "materials" || opts.width != 120 || opts.spp != 3 || !opts.parallel {
		t.Errorf("Flags not applied: %+v", opts)
	}
	if math.Abs(opts.ar-4.0/3.0) > 1e-12 {
		t.Errorf("Expected aspect ratio 4/3, got %f", opts.ar)
	}

	defaults, _, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if defaults.scene != "default" || defaults.ar != 0 || defaults.out != "" || defaults.tileSize != 32 || defaults.parallel {
		t.Errorf("Unexpected defaults: %+v", defaults)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{"-width", "-5"},
		{"-spp", "-1"},
		{"-depth", "-1"},
		{"-workers", "-2"},
		{"-tile", "0"},
		{"-ar", "wide"},
		{"-bogus"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, _, err := parseFlags(args, io.Discard); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		})
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expectError bool
	}{
		{"default scene", options{scene: "default"}, false},
		{"materials scene", options{scene: "materials"}, false},
		{"random scene", options{scene: "random"}, false},
		{"spheregrid scene", options{scene: "spheregrid"}, false},
		{"width override", options{scene: "default", width: 64, ar: 2}, false},
		{"unknown scene", options{scene: "nonexistent"}, true},
		{"empty scene name", options{scene: ""}, true},
		{"missing config", options{config: "scenes/nonexistent.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			s, err := createScene(&opts)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %+v, but got none", tt.opts)
				}
				if s != nil {
					t.Errorf("Expected nil scene, got %T", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			width, height := s.ImageSize()
			if width <= 0 || height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", width, height)
			}
			if tt.opts.width != 0 && width != tt.opts.width {
				t.Errorf("Expected width override %d, got %d", tt.opts.width, width)
			}
			if tt.opts.ar != 0 && height != int(float64(tt.opts.width)/tt.opts.ar) {
				t.Errorf("Expected aspect ratio override, got %dx%d", width, height)
			}
		})
	}
}

func TestCreateScene_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	content := `{"spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "m"}],
		"materials": {"m": {"type": "metal", "albedo": [0.9, 0.9, 0.9]}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	// -config wins over -scene
	s, err := createScene(&options{scene: "nonexistent", config: path, width: 50})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.World.Len() != 1 {
		t.Errorf("Expected 1 sphere, got %d", s.World.Len())
	}
	if width, _ := s.ImageSize(); width != 50 {
		t.Errorf("Expected width 50, got %d", width)
	}
}

func TestRun_PPMToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-width", "8", "-ar", "2:1", "-spp", "2", "-depth", "3", "-parallel", "-workers", "2", "-tile", "3"}

	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("Unexpected error: %v (stderr: %s)", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3+8*4 {
		t.Fatalf("Expected header plus 32 pixel lines, got %d lines", len(lines))
	}
	if lines[0] != "P3" || lines[1] != "8 4" || lines[2] != "255" {
		t.Errorf("Unexpected header %q", lines[:3])
	}
	if !strings.Contains(stderr.String(), "Rendering 8x4, 2 samples per pixel, max depth 3") {
		t.Errorf("Expected render settings on stderr, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Render completed") {
		t.Errorf("Expected progress on stderr, got %q", stderr.String())
	}
}

func TestRun_SeededIsDeterministic(t *testing.T) {
	args := []string{"-width", "6", "-ar", "3:2", "-spp", "2", "-depth", "4", "-seed", "7"}

	var first, second bytes.Buffer
	if err := run(args, &first, io.Discard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := run(args, &second, io.Discard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first.String() != second.String() {
		t.Error("Renders with the same seed should match")
	}
}

func TestRun_PNGOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "renders", "out.png")
	args := []string{"-scene", "materials", "-width", "10", "-ar", "1:1", "-spp", "1", "-depth", "2", "-out", out}

	var stdout bytes.Buffer
	if err := run(args, &stdout, io.Discard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Nothing should be written to stdout when -out is set, got %d bytes", stdout.Len())
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("Unexpected PNG bounds %v", img.Bounds())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := [][]string{
		{"-scene", "nonexistent"},
		{"-ar", "0:0"},
		{"-config", "does-not-exist.json"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if err := run(args, io.Discard, io.Discard); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		})
	}
}

func TestRun_HelpAndList(t *testing.T) {
	var help bytes.Buffer
	if err := run([]string{"-help"}, &help, io.Discard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(help.String(), "-scene") || !strings.Contains(help.String(), "materials") {
		t.Errorf("Help should describe flags and scenes, got %q", help.String())
	}

	var list bytes.Buffer
	if err := run([]string{"-list", "-scenes", t.TempDir()}, &list, io.Discard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, id := range []string{"default", "materials", "random", "spheregrid"} {
		if !strings.Contains(list.String(), id) {
			t.Errorf("Scene list missing %q: %q", id, list.String())
		}
	}
}
