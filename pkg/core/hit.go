package core

// HitRecord describes a ray-surface intersection. Normal always faces
// against the incoming ray.
type HitRecord struct {
	T         float64 // Parameter t along the ray
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Unit normal oriented against the ray
	FrontFace bool    // Whether the outward normal already faced the ray
}

// NewHitRecord builds a record from an outward normal, flipping it when the
// ray arrives from inside the surface
func NewHitRecord(ray Ray, t float64, point, outwardNormal Vec3) HitRecord {
	h := HitRecord{T: t, Point: point}
	h.SetFaceNormal(ray, outwardNormal)
	return h
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
