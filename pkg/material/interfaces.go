package material

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material scatters an incoming ray at a hit point. The returned ray starts
// at the hit point with depth one greater than rayIn, and the returned color
// attenuates whatever radiance that ray carries back. A black attenuation
// means the ray was absorbed.
//
// The set of materials is closed: Diffuse, Metal and Dielectric. Materials are
// immutable and may be shared by any number of surfaces and goroutines.
type Material interface {
	Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, core.Color)
	isMaterial()
}

// Reflect calculates the mirror reflection of v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
