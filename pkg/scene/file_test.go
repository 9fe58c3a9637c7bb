package scene

import (
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

const validSceneFile = `
camera:
  center: [0, 0, 0]
  lookAt: [0, 0, -1]
  width: 64
  aspectRatio: 2
render:
  samples: 16
  workers: 2
  seed: 9
materials:
  ground:
    type: diffuse
    albedo: [0.5, 0.5, 0.5]
  mirror:
    type: metal
    albedo: [0.8, 0.8, 0.8]
    fuzz: 0.1
  glass:
    type: dielectric
    refractiveIndex: 1.5
spheres:
  - center: [0, -100.5, -1]
    radius: 100
    material: ground
  - center: [0, 0, -1]
    radius: 0.5
    material: glass
    boxed: true
  - center: [0, 0, -1]
    radius: -0.45
    material: glass
  - center: [0.2, 0, -1]
    radius: 0.3
    material: mirror
    avoidCollision: true
  - center: [1.5, 0, -1]
    radius: 0.3
    material: mirror
    avoidCollision: true
`

func TestParseFile(t *testing.T) {
	f, err := ParseFile([]byte(validSceneFile))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if f.Render.Samples != 16 || f.Render.Workers != 2 || f.Render.Seed != 9 {
		t.Errorf("Unexpected render block: %+v", f.Render)
	}
	if len(f.Materials) != 3 {
		t.Errorf("Expected 3 materials, got %d", len(f.Materials))
	}
	if len(f.Spheres) != 5 {
		t.Errorf("Expected 5 spheres, got %d", len(f.Spheres))
	}
}

func TestFileBuild(t *testing.T) {
	f, err := ParseFile([]byte(validSceneFile))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	s, err := f.Build("test", geometry.CameraConfig{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The first avoidCollision sphere overlaps the glass ball and is skipped
	if s.World.Len() != 4 {
		t.Fatalf("Expected 4 entries, got %d", s.World.Len())
	}
	if _, ok := s.World.Entries[1].Surface.(*geometry.BoundingBox); !ok {
		t.Errorf("Expected boxed glass sphere, got %T", s.World.Entries[1].Surface)
	}
	last := s.World.Entries[3].Surface.(*geometry.Sphere)
	if last.Center != core.NewVec3(1.5, 0, -1) {
		t.Errorf("Expected the non-overlapping sphere last, got center %v", last.Center)
	}

	// Materials are shared between spheres that name the same entry
	if s.World.Entries[1].Material != s.World.Entries[2].Material {
		t.Error("Expected both glass spheres to share one material")
	}

	if s.Camera.Width() != 64 || s.Camera.Height() != 32 {
		t.Errorf("Expected 64x32 camera, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}
	if s.SamplingConfig.SamplesPerPixel != 16 {
		t.Errorf("Expected 16 samples, got %d", s.SamplingConfig.SamplesPerPixel)
	}
}

func TestFileBuild_CameraOverride(t *testing.T) {
	f, err := ParseFile([]byte(validSceneFile))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	s, err := f.Build("test", geometry.CameraConfig{Width: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Camera.Width() != 10 || s.Camera.Height() != 5 {
		t.Errorf("Expected 10x5 camera, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}
}

func TestParseFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "spheres: [",
			wantErr: "parse scene file",
		},
		{
			name:    "unknown field",
			content: "spheres: []\nlights: []",
			wantErr: "parse scene file",
		},
		{
			name:    "no spheres",
			content: "materials: {}",
			wantErr: "no spheres",
		},
		{
			name: "unknown material",
			content: `
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: gold`,
			wantErr: `unknown material "gold"`,
		},
		{
			name: "bad material type",
			content: `
materials:
  gold:
    type: emissive
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: gold`,
			wantErr: `unknown material type "emissive"`,
		},
		{
			name: "short center",
			content: `
materials:
  gray: {type: diffuse, albedo: [0.5, 0.5, 0.5]}
spheres:
  - center: [0, 0]
    radius: 0.5
    material: gray`,
			wantErr: "expected 3 components",
		},
		{
			name: "zero radius",
			content: `
materials:
  gray: {type: diffuse, albedo: [0.5, 0.5, 0.5]}
spheres:
  - center: [0, 0, -1]
    radius: 0
    material: gray`,
			wantErr: "radius must not be zero",
		},
		{
			name: "camera looking at itself",
			content: `
camera:
  center: [1, 1, 1]
  lookAt: [1, 1, 1]
materials:
  gray: {type: diffuse, albedo: [0.5, 0.5, 0.5]}
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: gray`,
			wantErr: "center and lookAt must differ",
		},
		{
			name: "dielectric without index",
			content: `
materials:
  glass: {type: dielectric}
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: glass`,
			wantErr: "refractiveIndex must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestNameFromPath(t *testing.T) {
	if got := NameFromPath("scenes/two-balls.yaml"); got != "two-balls" {
		t.Errorf("NameFromPath = %q, want %q", got, "two-balls")
	}
}
