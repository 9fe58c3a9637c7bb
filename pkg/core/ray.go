package core

// Ray is a half-line with a bounce counter. Depth counts the bounces that
// produced it and is 0 for camera rays.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Depth     int
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3, depth int) Ray {
	return Ray{Origin: origin, Direction: direction, Depth: depth}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Bounce returns the ray leaving origin in direction after one more bounce
func (r Ray) Bounce(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Depth: r.Depth + 1}
}
