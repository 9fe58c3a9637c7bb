package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Search bounds for primary visibility queries. TMin keeps a bounced ray
// from re-hitting the surface it just left.
var (
	TMin = 0.001
	TMax = math.Inf(1)
)

// Surface is one of the closed set of intersectable shapes: *Sphere or
// *BoundingBox.
type Surface interface {
	BoundingBox() core.AABB
	isSurface()
}

// Hit is the nearest intersection found by a search. Bounding boxes resolve
// to the sphere they wrap, so a Hit always names a sphere.
type Hit struct {
	T        float64
	Sphere   *Sphere
	Material material.Material
}

// Record builds the full hit record for ray at the hit parameter
func (h Hit) Record(ray core.Ray) core.HitRecord {
	return h.Sphere.Record(ray, h.T)
}

// hitter runs a nearest-hit search
type hitter interface {
	Hit(ray core.Ray, tMin, tMax float64) (Hit, bool)
}
