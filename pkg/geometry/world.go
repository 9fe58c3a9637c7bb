package geometry

import (
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Entry pairs a surface with the material it is drawn with
type Entry struct {
	Surface  Surface
	Material material.Material
}

// World is the scene being rendered. Once a render starts it is only read,
// so it can be shared by every worker without locking.
type World struct {
	Entries []Entry
	// DefaultMaterial is kept for scene bookkeeping; the hit path never uses it.
	DefaultMaterial material.Material
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Entries:         make([]Entry, 0),
		DefaultMaterial: material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5)),
	}
}

// Len returns the number of top-level entries
func (w *World) Len() int {
	return len(w.Entries)
}

// Add appends a surface with its material
func (w *World) Add(surface Surface, mat material.Material) {
	w.Entries = append(w.Entries, Entry{Surface: surface, Material: mat})
}

// AddSphere appends a sphere and returns it
func (w *World) AddSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	sphere := NewSphere(center, radius)
	w.Add(sphere, mat)
	return sphere
}

// AddBoxedSphere appends a sphere wrapped in its own bounding box
func (w *World) AddBoxedSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	sphere := NewSphere(center, radius)
	box, err := NewBoundingBox(sphere, mat)
	if err != nil {
		return nil, errors.Wrap(err, "box sphere")
	}
	w.Add(box, mat)
	return sphere, nil
}

// Collides reports whether a sphere at center with radius would overlap any
// sphere already in the world, boxed or not
func (w *World) Collides(center core.Vec3, radius float64) bool {
	for _, sphere := range w.spheres() {
		if center.Subtract(sphere.Center).Length() < radius+sphere.Radius {
			return true
		}
	}
	return false
}

// AddSphereWithoutCollision appends the sphere only if it does not overlap
// an existing one. It reports whether the sphere was added.
func (w *World) AddSphereWithoutCollision(center core.Vec3, radius float64, mat material.Material) bool {
	if w.Collides(center, radius) {
		return false
	}
	w.AddSphere(center, radius, mat)
	return true
}

// Hit finds the nearest intersection in [tMin, tMax] by scanning every
// entry. Ties keep the entry found first.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	var closest Hit
	hitAnything := false

	for _, entry := range w.Entries {
		switch s := entry.Surface.(type) {
		case *Sphere:
			if t, ok := s.Hit(ray, tMin, tMax); ok && (!hitAnything || t < closest.T) {
				closest = Hit{T: t, Sphere: s, Material: entry.Material}
				hitAnything = true
			}
		case *BoundingBox:
			if hit, ok := s.Hit(ray, tMin, tMax); ok && (!hitAnything || hit.T < closest.T) {
				closest = hit
				hitAnything = true
			}
		}
	}

	return closest, hitAnything
}

// spheres lists every sphere, looking through bounding boxes
func (w *World) spheres() []*Sphere {
	spheres := make([]*Sphere, 0, len(w.Entries))
	for _, entry := range w.Entries {
		switch s := entry.Surface.(type) {
		case *Sphere:
			spheres = append(spheres, s)
		case *BoundingBox:
			if sub, ok := s.world.(*World); ok {
				spheres = append(spheres, sub.spheres()...)
			}
		}
	}
	return spheres
}
