package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewBubbleScene creates a hollow glass shell in front of two diffuse spheres.
// The shell is an outer glass sphere plus an inner one with negative radius,
// whose normals point inward.
func NewBubbleScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.3, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 16.0 / 9.0,
		VFov:        40,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	glass := material.NewDielectric(1.5)
	world := geometry.NewWorld()

	world.AddSphere(core.NewVec3(0, 0, -1), 0.5, glass)
	world.AddSphere(core.NewVec3(0, 0, -1), -0.45, glass)
	world.AddSphere(core.NewVec3(-0.6, 0, -2.2), 0.5, material.NewDiffuse(core.NewColor(0.1, 0.2, 0.5)))
	world.AddSphere(core.NewVec3(0.7, 0, -2.4), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.1))
	world.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewDiffuse(core.NewColor(0.8, 0.8, 0.0)))

	return newScene("bubble", world, cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
}
