package geometry

import (
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ErrNestedBoundingBox is returned when a bounding box would wrap another one
var ErrNestedBoundingBox = errors.New("bounding box cannot wrap another bounding box")

// BoundingBox prunes rays that miss the box around a single surface before
// running the surface's own intersection test. It is one level deep by
// construction; it is not a hierarchy.
type BoundingBox struct {
	Box   core.AABB
	world hitter // private one-entry world
}

// NewBoundingBox wraps surface and its material in a box
func NewBoundingBox(surface Surface, mat material.Material) (*BoundingBox, error) {
	if _, nested := surface.(*BoundingBox); nested {
		return nil, errors.WithStack(ErrNestedBoundingBox)
	}

	sub := NewWorld()
	sub.DefaultMaterial = mat
	sub.Add(surface, mat)

	return &BoundingBox{
		Box:   surface.BoundingBox(),
		world: sub,
	}, nil
}

func (b *BoundingBox) isSurface() {}

// BoundingBox returns the box itself
func (b *BoundingBox) BoundingBox() core.AABB {
	return b.Box
}

// Hit runs the slab test and, only if the ray passes it, searches the
// wrapped surface with the caller's original bounds
func (b *BoundingBox) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	if !b.Box.Hit(ray, tMin, tMax) {
		return Hit{}, false
	}
	return b.world.Hit(ray, tMin, tMax)
}
