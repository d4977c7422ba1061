package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene types reported by SceneInfo
const (
	TypeBuiltIn = "builtin"
	TypeJSON    = "json"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// BuiltInScenes returns the scenes that need no scene file
func BuiltInScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Diffuse sphere on a large ground sphere",
			Type:        TypeBuiltIn,
		},
		{
			ID:          "materials",
			Name:        "Materials",
			Description: "Diffuse, hollow glass and metal spheres side by side",
			Type:        TypeBuiltIn,
		},
		{
			ID:          "random",
			Name:        "Random Spheres",
			Description: "Field of small random spheres around three large ones",
			Type:        TypeBuiltIn,
		},
		{
			ID:          "spheregrid",
			Name:        "Sphere Grid",
			Description: "10x10 grid of rainbow-colored metallic spheres",
			Type:        TypeBuiltIn,
		},
	}
}

// Create builds a scene by built-in name or from a path ending in .json.
// Camera overrides replace the non-zero fields of the scene's own camera.
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	switch name {
	case "default":
		return NewDefaultScene(cameraOverrides...)
	case "materials":
		return NewMaterialsScene(cameraOverrides...)
	case "random":
		return NewRandomScene(DefaultRandomSceneSeed, cameraOverrides...)
	case "spheregrid":
		return NewSphereGridScene(10, cameraOverrides...)
	}

	if strings.HasSuffix(strings.ToLower(name), ".json") {
		s, err := LoadJSON(name)
		if err != nil {
			return nil, err
		}
		if len(cameraOverrides) > 0 {
			if err := s.OverrideCamera(cameraOverrides[0]); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown scene %q", name)
}

// ListJSONScenes scans dir for scene files. A missing directory yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseJSONMetadata reads the name and description of a scene file without building it
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     TypeJSON,
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(BuiltInScenes(), jsonScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
