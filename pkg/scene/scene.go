package scene

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the scene's preferred render settings
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Options carries caller overrides for a built-in scene
type Options struct {
	Camera geometry.CameraConfig // Non-zero fields replace the scene's camera settings
	Seed   int64                 // Seed for scenes with random content
}

// originalVFov is the field of view of a viewport two units tall at focal length two
var originalVFov = 2 * math.Atan(0.5) * 180 / math.Pi

type builtin struct {
	description string
	build       func(opts Options) (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		description: "Glass, metal and diffuse spheres on a large ground sphere",
		build: func(opts Options) (*Scene, error) {
			return NewDefaultScene(opts.Camera), nil
		},
	},
	"bubble": {
		description: "Hollow glass shell in front of diffuse spheres",
		build: func(opts Options) (*Scene, error) {
			return NewBubbleScene(opts.Camera), nil
		},
	},
	"random": {
		description: "Randomly placed non-overlapping small spheres, each in its own bounding box",
		build: func(opts Options) (*Scene, error) {
			return NewRandomScene(opts.Seed, opts.Camera)
		},
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the one-line description of a built-in scene
func Description(name string) string {
	return builtins[name].description
}

// Load builds the named built-in scene
func Load(name string, opts Options) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q", name)
	}
	s, err := b.build(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "build scene %q", name)
	}
	return s, nil
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override geometry.CameraConfig) geometry.CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
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

// newScene finishes a scene once its world is populated
func newScene(name string, world *geometry.World, cameraConfig geometry.CameraConfig, sampling SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          world,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
	}
}
