package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Sphere represents a sphere shape. A negative radius flips the outward
// normal, which models the inner wall of a hollow glass shell.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

func (s *Sphere) isSurface() {}

// Hit returns the smallest root of |O + tD - C|^2 = r^2 inside [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	// a > 0, so the minus root is the nearer one
	sqrtD := math.Sqrt(discriminant)
	if root := (-halfB - sqrtD) / a; root >= tMin && root <= tMax {
		return root, true
	}
	if root := (-halfB + sqrtD) / a; root >= tMin && root <= tMax {
		return root, true
	}
	return 0, false
}

// Record builds the hit record at parameter t. The outward normal uses the
// signed radius.
func (s *Sphere) Record(ray core.Ray, t float64) core.HitRecord {
	point := ray.At(t)
	outwardNormal := point.Subtract(s.Center).Divide(s.Radius)
	return core.NewHitRecord(ray, t, point, outwardNormal)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
