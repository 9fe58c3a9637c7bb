package scene

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// File is a scene description read from YAML
type File struct {
	Camera    CameraSpec              `yaml:"camera"`
	Render    RenderSpec              `yaml:"render"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Spheres   []SphereSpec            `yaml:"spheres"`
}

// CameraSpec mirrors geometry.CameraConfig. Omitted fields keep their defaults.
type CameraSpec struct {
	Center        []float64 `yaml:"center"`
	LookAt        []float64 `yaml:"lookAt"`
	Up            []float64 `yaml:"up"`
	Width         int       `yaml:"width"`
	AspectRatio   float64   `yaml:"aspectRatio"`
	VFov          float64   `yaml:"vfov"`
	Aperture      float64   `yaml:"aperture"`
	FocusDistance float64   `yaml:"focusDistance"`
}

// RenderSpec holds render settings; zero values leave the decision to the caller
type RenderSpec struct {
	Samples  int   `yaml:"samples"`
	Workers  int   `yaml:"workers"`
	MaxDepth int   `yaml:"maxDepth"`
	Seed     int64 `yaml:"seed"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string    `yaml:"type"` // diffuse, metal or dielectric
	Albedo          []float64 `yaml:"albedo"`
	Fuzz            float64   `yaml:"fuzz"`
	RefractiveIndex float64   `yaml:"refractiveIndex"`
}

// SphereSpec places one sphere. A negative radius makes a hollow shell.
type SphereSpec struct {
	Center         []float64 `yaml:"center"`
	Radius         float64   `yaml:"radius"`
	Material       string    `yaml:"material"`
	Boxed          bool      `yaml:"boxed"`
	AvoidCollision bool      `yaml:"avoidCollision"`
}

// defaultFileCamera is used for fields a scene file leaves out
var defaultFileCamera = geometry.CameraConfig{
	Center:      core.NewVec3(0, 0, 0),
	LookAt:      core.NewVec3(0, 0, -1),
	Up:          core.NewVec3(0, 1, 0),
	Width:       400,
	AspectRatio: 16.0 / 9.0,
	VFov:        originalVFov,
}

// ParseFile decodes and validates a YAML scene description
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse scene file")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads a YAML scene description from disk
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene file %s", path)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene file %s", path)
	}
	return f, nil
}

// Validate checks the description for values that cannot be rendered
func (f *File) Validate() error {
	if _, err := f.Camera.config(); err != nil {
		return err
	}
	if f.Render.Samples < 0 || f.Render.Workers < 0 || f.Render.MaxDepth < 0 {
		return errors.New("render: samples, workers and maxDepth must not be negative")
	}

	for name, spec := range f.Materials {
		if _, err := spec.build(); err != nil {
			return errors.Wrapf(err, "material %q", name)
		}
	}

	if len(f.Spheres) == 0 {
		return errors.New("scene has no spheres")
	}
	for i, spec := range f.Spheres {
		if _, err := toVec3(spec.Center); err != nil {
			return errors.Wrapf(err, "sphere %d center", i)
		}
		if spec.Radius == 0 {
			return errors.Errorf("sphere %d: radius must not be zero", i)
		}
		if _, ok := f.Materials[spec.Material]; !ok {
			return errors.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}
	}
	return nil
}

// Build constructs the world and camera. Non-zero fields of cameraOverride
// replace the file's camera settings.
func (f *File) Build(name string, cameraOverride geometry.CameraConfig) (*Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, err
	}
	cameraConfig = MergeCameraConfig(cameraConfig, cameraOverride)

	// Materials are built once and shared by every sphere that names them
	materials := make(map[string]material.Material, len(f.Materials))
	for matName, spec := range f.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, errors.Wrapf(err, "material %q", matName)
		}
		materials[matName] = mat
	}

	world := geometry.NewWorld()
	for i, spec := range f.Spheres {
		center, err := toVec3(spec.Center)
		if err != nil {
			return nil, errors.Wrapf(err, "sphere %d center", i)
		}
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, errors.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}

		if spec.AvoidCollision && world.Collides(center, spec.Radius) {
			continue
		}
		if spec.Boxed {
			if _, err := world.AddBoxedSphere(center, spec.Radius, mat); err != nil {
				return nil, errors.Wrapf(err, "sphere %d", i)
			}
			continue
		}
		world.AddSphere(center, spec.Radius, mat)
	}

	return newScene(name, world, cameraConfig, SamplingConfig{
		SamplesPerPixel: f.Render.Samples,
		MaxDepth:        f.Render.MaxDepth,
	}), nil
}

// NameFromPath derives a scene name from a file path, e.g. "scenes/two-balls.yaml" -> "two-balls"
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (c CameraSpec) config() (geometry.CameraConfig, error) {
	config := defaultFileCamera

	vectors := []struct {
		name  string
		value []float64
		dest  *core.Vec3
	}{
		{"center", c.Center, &config.Center},
		{"lookAt", c.LookAt, &config.LookAt},
		{"up", c.Up, &config.Up},
	}
	for _, v := range vectors {
		if v.value == nil {
			continue
		}
		vec, err := toVec3(v.value)
		if err != nil {
			return config, errors.Wrapf(err, "camera %s", v.name)
		}
		*v.dest = vec
	}

	if c.Width < 0 {
		return config, errors.Errorf("camera width must not be negative, got %d", c.Width)
	}
	if c.Width > 0 {
		config.Width = c.Width
	}
	if c.AspectRatio < 0 {
		return config, errors.Errorf("camera aspectRatio must be positive, got %g", c.AspectRatio)
	}
	if c.AspectRatio > 0 {
		config.AspectRatio = c.AspectRatio
	}
	if c.VFov < 0 || c.VFov >= 180 {
		return config, errors.Errorf("camera vfov must be in (0, 180), got %g", c.VFov)
	}
	if c.VFov > 0 {
		config.VFov = c.VFov
	}
	if c.Aperture < 0 {
		return config, errors.Errorf("camera aperture must not be negative, got %g", c.Aperture)
	}
	config.Aperture = c.Aperture
	config.FocusDistance = c.FocusDistance

	if config.LookAt.Subtract(config.Center).NearZero() {
		return config, errors.New("camera center and lookAt must differ")
	}
	return config, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch m.Type {
	case "diffuse":
		albedo, err := toColor(m.Albedo)
		if err != nil {
			return nil, errors.Wrap(err, "albedo")
		}
		return material.NewDiffuse(albedo), nil
	case "metal":
		albedo, err := toColor(m.Albedo)
		if err != nil {
			return nil, errors.Wrap(err, "albedo")
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, errors.Errorf("refractiveIndex must be positive, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, errors.Errorf("unknown material type %q", m.Type)
	}
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, errors.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func toColor(values []float64) (core.Color, error) {
	if len(values) != 3 {
		return core.Color{}, errors.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewColor(values[0], values[1], values[2]), nil
}
