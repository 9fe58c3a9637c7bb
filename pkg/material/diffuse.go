package material

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Diffuse is a Lambertian surface scattering around the normal
type Diffuse struct {
	Albedo core.Color
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Color) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

func (d *Diffuse) isMaterial() {}

// Scatter sends the ray towards normal + a random unit vector
func (d *Diffuse) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, core.Color) {
	direction := hit.Normal.Add(core.RandomUnitInSphere(random, 1))

	// The random vector can cancel the normal almost exactly
	if direction.NearZero() {
		direction = hit.Normal.Normalize()
	}

	return rayIn.Bounce(hit.Point, direction), d.Albedo
}
