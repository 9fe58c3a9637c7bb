package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"parallel offset", core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), 0)},
		{"perpendicular offset beyond radius", core.NewRay(core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0, -1), 0)},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tHit, isHit := sphere.Hit(tt.ray, TMin, TMax); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", tHit)
			}
		})
	}
}

func TestSphere_Hit_ThroughCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"unit sphere", core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 0, 5)},
		{"offset sphere", core.NewVec3(1, -2, -3), 0.5, core.NewVec3(4, 2, 5)},
		{"large ground sphere", core.NewVec3(0, -101, -3), 100, core.NewVec3(0, 10, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius)
			toCenter := tt.center.Subtract(tt.origin)
			ray := core.NewRay(tt.origin, toCenter.Normalize(), 0)

			tHit, isHit := sphere.Hit(ray, TMin, TMax)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expected := toCenter.Length() - tt.radius
			if math.Abs(tHit-expected) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expected, tHit)
			}
		})
	}
}

func TestSphere_Hit_RootOrder(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), 0)

	// Near root 1 is excluded, far root 3 is accepted
	tHit, isHit := sphere.Hit(ray, 1.5, TMax)
	if !isHit || math.Abs(tHit-3) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f hit=%t", tHit, isHit)
	}

	// Bounds are inclusive
	tHit, isHit = sphere.Hit(ray, 1, 1)
	if !isHit || tHit != 1 {
		t.Errorf("Expected inclusive bound hit at t=1, got t=%f hit=%t", tHit, isHit)
	}
}

func TestSphere_Record_FrontAndBackFace(t *testing.T) {
	tests := []struct {
		name           string
		radius         float64
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			radius:         1,
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			radius:         1,
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "negative radius from outside",
			radius:         -1,
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "negative radius from inside",
			radius:         -1,
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, 0), tt.radius)
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection, 0)

			tHit, isHit := sphere.Hit(ray, TMin, TMax)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(tHit-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, tHit)
			}

			hit := sphere.Record(ray, tHit)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Record_NormalOrientation(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for _, radius := range []float64{1.5, -1.5} {
		sphere := NewSphere(core.NewVec3(0.3, -0.2, 0.1), radius)
		checked := 0

		for i := 0; i < 2000; i++ {
			origin := core.RandomInRange(random, -4, 4)
			direction := core.RandomInRange(random, -1, 1)
			ray := core.NewRay(origin, direction, 0)

			tHit, isHit := sphere.Hit(ray, TMin, TMax)
			if !isHit {
				continue
			}
			checked++

			hit := sphere.Record(ray, tHit)
			if d := ray.Direction.Dot(hit.Normal); d > 0 {
				t.Fatalf("radius %f: normal %v faces along the ray (dot %f)", radius, hit.Normal, d)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Fatalf("radius %f: normal is not unit length: %f", radius, hit.Normal.Length())
			}

			outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
			if hit.FrontFace != (ray.Direction.Dot(outward) < 0) {
				t.Fatalf("radius %f: front face %t disagrees with outward normal", radius, hit.FrontFace)
			}
		}

		if checked == 0 {
			t.Fatalf("radius %f: no rays hit the sphere", radius)
		}
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	for _, radius := range []float64{2, -2} {
		box := NewSphere(core.NewVec3(1, 2, 3), radius).BoundingBox()
		if box.Min != core.NewVec3(-1, 0, 1) || box.Max != core.NewVec3(3, 4, 5) {
			t.Errorf("radius %f: unexpected box %+v", radius, box)
		}
	}
}
