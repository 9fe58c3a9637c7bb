package scene

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

const (
	randomSphereCount = 60
	randomAttempts    = 20 // placement tries per sphere before giving up on it
)

// NewRandomScene scatters small spheres over a ground sphere. Every sphere is
// placed only where it does not overlap another one and is wrapped in its own
// bounding box. The same seed always produces the same scene.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(6, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          30,
		Aperture:      0.05,
		FocusDistance: 0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	random := rand.New(rand.NewSource(seed))
	world := geometry.NewWorld()

	world.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5)))
	if _, err := world.AddBoxedSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)); err != nil {
		return nil, errors.Wrap(err, "add center sphere")
	}

	for i := 0; i < randomSphereCount; i++ {
		radius := 0.1 + 0.15*random.Float64()
		mat := randomMaterial(random)

		for attempt := 0; attempt < randomAttempts; attempt++ {
			center := core.NewVec3(
				-5+10*random.Float64(),
				radius,
				-5+10*random.Float64(),
			)
			if world.Collides(center, radius) {
				continue
			}
			if _, err := world.AddBoxedSphere(center, radius, mat); err != nil {
				return nil, errors.Wrapf(err, "add sphere %d", i)
			}
			break
		}
	}

	return newScene("random", world, cameraConfig, SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}), nil
}

func randomMaterial(random *rand.Rand) material.Material {
	choice := random.Float64()
	switch {
	case choice < 0.7:
		albedo := core.NewColor(
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
		)
		return material.NewDiffuse(albedo)
	case choice < 0.9:
		albedo := core.NewColor(
			0.5+0.5*random.Float64(),
			0.5+0.5*random.Float64(),
			0.5+0.5*random.Float64(),
		)
		return material.NewMetal(albedo, 0.5*random.Float64())
	default:
		return material.NewDielectric(1.5)
	}
}
