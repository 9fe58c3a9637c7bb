package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefaultScene creates the six-sphere scene: a glass ball, two metal
// marbles and two diffuse spheres resting on a huge ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -2),
		Up:          core.NewVec3(0, 1, 0),
		Width:       1000,
		AspectRatio: 16.0 / 9.0,
		VFov:        originalVFov,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	blueDiffuse := material.NewDiffuse(core.NewColor(0.3, 0.05, 0.4))
	grayDiffuse := material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5))
	yellowDiffuse := material.NewDiffuse(core.NewColor(0.4, 0.6, 0.1))
	blueMetal := material.NewMetal(core.NewColor(0.75, 0.75, 0.95), 0.0)
	redMetal := material.NewMetal(core.NewColor(0.95, 0.1, 0.05), 0.15)
	glass := material.NewDielectric(1.5)

	world := geometry.NewWorld()
	world.AddSphere(core.NewVec3(0, -0.5, -3.1), 0.5, glass)
	world.AddSphere(core.NewVec3(-1, -0.7, -3), 0.2, blueMetal)
	world.AddSphere(core.NewVec3(0, -0.8, -4.3), 0.2, redMetal)
	world.AddSphere(core.NewVec3(1, -0.5, -3), 0.5, blueDiffuse)
	world.AddSphere(core.NewVec3(-2, 0, -3), 1, yellowDiffuse)
	world.AddSphere(core.NewVec3(0, -101, -3), 100, grayDiffuse)

	return newScene("default", world, cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
}
