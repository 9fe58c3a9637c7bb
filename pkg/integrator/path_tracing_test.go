package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// createTestWorld creates a simple world with a diffuse sphere on a ground sphere
func createTestWorld() *geometry.World {
	world := geometry.NewWorld()
	world.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDiffuse(core.NewColor(0.7, 0.3, 0.3)))
	world.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5)))
	return world
}

func colorsClose(a, b core.Color, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance && math.Abs(a.G-b.G) <= tolerance && math.Abs(a.B-b.B) <= tolerance
}

func TestPathTracing_DepthCutoff(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultMaxDepth)
	random := rand.New(rand.NewSource(42))

	worlds := map[string]*geometry.World{
		"empty":  geometry.NewWorld(),
		"sphere": createTestWorld(),
	}

	for name, world := range worlds {
		t.Run(name, func(t *testing.T) {
			for _, direction := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)} {
				ray := core.NewRay(core.NewVec3(0, 0, 0), direction, 51)
				if c := integrator.RayColor(ray, world, random); c != core.Black {
					t.Errorf("Expected black for depth 51, got %v", c)
				}
			}
		})
	}

	// Depth 50 is still evaluated
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 50)
	if c := integrator.RayColor(ray, geometry.NewWorld(), random); c.IsBlack() {
		t.Error("Expected sky color at depth 50")
	}
}

func TestPathTracing_Background(t *testing.T) {
	integrator := NewPathTracingIntegrator(0)
	random := rand.New(rand.NewSource(1))
	world := geometry.NewWorld()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"straight up", core.NewVec3(0, 3, 0), core.NewColor(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewColor(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewColor(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction, 0), world, random)
			if !colorsClose(c, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestPathTracing_MirrorReflectsSky(t *testing.T) {
	world := geometry.NewWorld()
	albedo := core.NewColor(0.8, 0.6, 0.4)
	world.AddSphere(core.NewVec3(0, 0, -5), 1, material.NewMetal(albedo, 0))

	integrator := NewPathTracingIntegrator(0)
	random := rand.New(rand.NewSource(1))

	// Head-on: the ray reflects straight back along +z to the horizon color
	c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0), world, random)
	expected := core.NewColor(0.75, 0.85, 1.0).MultiplyColor(albedo)
	if !colorsClose(c, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestPathTracing_ClearGlassNeverDarkensSky(t *testing.T) {
	world := geometry.NewWorld()
	world.AddSphere(core.NewVec3(0, 0, -3), 1, material.NewDielectric(1.5))

	integrator := NewPathTracingIntegrator(0)
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0.05, -1), 0), world, random)
		// Without absorption the result is some sky color
		if math.Abs(c.B-1.0) > 1e-12 || c.R < 0.5-1e-12 || c.R > 1.0+1e-12 {
			t.Fatalf("Expected an unattenuated sky color, got %v", c)
		}
	}
}

func TestPathTracing_DiffuseStaysWithinAlbedo(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(0)
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	for i := 0; i < 100; i++ {
		c := integrator.RayColor(ray, world, random)
		// First bounce off the red sphere bounds every channel by its albedo
		if c.R > 0.7+1e-12 || c.G > 0.3+1e-12 || c.B > 0.3+1e-12 || c.R < 0 {
			t.Fatalf("Color %v exceeds the sphere albedo", c)
		}
	}
}

func TestPathTracing_Deterministic(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.2, -0.1, -1), 0)

	a := integrator.RayColor(ray, world, rand.New(rand.NewSource(99)))
	b := integrator.RayColor(ray, world, rand.New(rand.NewSource(99)))
	if a != b {
		t.Errorf("Same seed should give the same estimate: %v vs %v", a, b)
	}
}
