package material

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Color // Metal color
	Fuzzness float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

func (m *Metal) isMaterial() {}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, core.Color) {
	reflected := Reflect(rayIn.Direction, hit.Normal)
	if m.Fuzzness == 0 {
		return rayIn.Bounce(hit.Point, reflected), m.Albedo
	}

	direction := reflected.Add(core.RandomInSphere(random, 1).Multiply(m.Fuzzness))
	scattered := rayIn.Bounce(hit.Point, direction)

	// Perturbed into the surface: absorbed, but the ray is still handed back
	if direction.Dot(hit.Normal) <= 0 {
		return scattered, core.Black
	}
	return scattered, m.Albedo
}
