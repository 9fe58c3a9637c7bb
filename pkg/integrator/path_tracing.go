package integrator

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// DefaultMaxDepth is the deepest bounce that still gathers light
const DefaultMaxDepth = 50

// Sky gradient endpoints
var (
	skyBottom = core.NewColor(1.0, 1.0, 1.0)
	skyTop    = core.NewColor(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements naive unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a path tracer; maxDepth <= 0 selects DefaultMaxDepth
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray. The recursion is bounded by
// MaxDepth+1 bounces because every scattered ray is one level deeper.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *geometry.World, random *rand.Rand) core.Color {
	// Past the bounce limit no more light is gathered
	if ray.Depth > pt.MaxDepth {
		return core.Black
	}

	hit, isHit := world.Hit(ray, geometry.TMin, geometry.TMax)
	if !isHit {
		return backgroundGradient(ray)
	}

	record := hit.Record(ray)
	scattered, attenuation := hit.Material.Scatter(ray, record, random)

	// Absorbed; the scattered ray cannot contribute
	if attenuation.IsBlack() {
		return core.Black
	}

	return pt.RayColor(scattered, world, random).MultiplyColor(attenuation)
}

// backgroundGradient blends white at the horizon into sky blue overhead
func backgroundGradient(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}
