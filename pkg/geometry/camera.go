package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up hint; zero means (0, 1, 0)
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 disables defocus blur
	FocusDistance float64   // Distance to the focal plane; <= 0 means |LookAt - Center|
}

// Camera generates rays for rendering. It is immutable after construction
// and safe to share between goroutines.
type Camera struct {
	config CameraConfig

	center  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3

	width, height int

	pixelDeltaU core.Vec3
	pixelDeltaV core.Vec3
	pixel00     core.Vec3

	lensRadius    float64
	focusDistance float64
}

// NewCamera derives the viewport and lens geometry from config
func NewCamera(config CameraConfig) *Camera {
	height := int(math.Round(float64(config.Width) / config.AspectRatio))
	if height < 1 {
		height = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}

	viewportHeight := 2.0 * math.Tan(config.VFov*math.Pi/180.0/2.0) * focusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(height)

	upHint := config.Up
	if upHint.IsZero() {
		upHint = core.NewVec3(0, 1, 0)
	}

	// Right-handed basis; image rows advance along -up
	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(upHint).Normalize()
	up := right.Cross(forward)

	viewportU := right.Multiply(viewportWidth)
	viewportV := up.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(height))

	pixel00 := config.Center.
		Add(forward.Multiply(focusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2)).
		Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:        config,
		center:        config.Center,
		forward:       forward,
		right:         right,
		up:            up,
		width:         config.Width,
		height:        height,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
		pixel00:       pixel00,
		lensRadius:    config.Aperture / 2,
		focusDistance: focusDistance,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 { return c.forward }

// GetRay generates a jittered ray through pixel (i, j), row 0 at the top.
// The origin is sampled over the lens disk for defocus blur.
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	jitterU := random.Float64() - 0.5
	jitterV := random.Float64() - 0.5

	lens := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
	origin := c.center.Add(c.right.Multiply(lens.X)).Add(c.up.Multiply(lens.Y))

	target := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + jitterU)).
		Add(c.pixelDeltaV.Multiply(float64(j) + jitterV))

	return core.NewRay(origin, target.Subtract(origin), 0)
}

// CenterRay returns the ray through the exact center of pixel (i, j) from
// the lens center, with no jitter or defocus
func (c *Camera) CenterRay(i, j int) core.Ray {
	target := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
	return core.NewRay(c.center, target.Subtract(c.center), 0)
}
