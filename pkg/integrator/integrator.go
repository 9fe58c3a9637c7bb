package integrator

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray. All randomness
	// comes from random, which the caller owns.
	RayColor(ray core.Ray, world *geometry.World, random *rand.Rand) core.Color
}
