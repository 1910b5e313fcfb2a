package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/scene"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func TestCamera_GetRay(t *testing.T) {
	config := scene.CameraConfig{
		Eye:    core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovH:   90,
		FovV:   90,
		Width:  3,
		Height: 3,
	}
	camera := NewCamera(config)

	testCases := []struct {
		name      string
		i, j      int
		direction core.Vec3
	}{
		{"center", 1, 1, core.NewVec3(0, 0, -5)},
		{"top left", 0, 0, core.NewVec3(-10.0/3, 10.0/3, -5)},
		{"bottom right", 2, 2, core.NewVec3(10.0/3, -10.0/3, -5)},
		{"middle right", 2, 1, core.NewVec3(10.0/3, 0, -5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ray := camera.GetRay(tc.i, tc.j)
			if ray.Origin != config.Eye {
				t.Errorf("Expected origin %v, got %v", config.Eye, ray.Origin)
			}
			if !vecNear(ray.Direction, tc.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tc.direction, ray.Direction)
			}
			if ray.Near != 0 || !math.IsInf(ray.Far, 1) {
				t.Errorf("Primary ray should accept (0, +Inf), got (%g, %g)", ray.Near, ray.Far)
			}
		})
	}
}

func TestCamera_Basis(t *testing.T) {
	// Looking down -x with a tilted up vector still yields an orthonormal frame
	camera := NewCamera(scene.CameraConfig{
		Eye:    core.NewVec3(10, 0, 0),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0.3),
		FovH:   60,
		FovV:   40,
		Width:  64,
		Height: 32,
	})

	for _, pair := range [][2]core.Vec3{{camera.u, camera.v}, {camera.v, camera.w}, {camera.u, camera.w}} {
		if d := pair[0].Dot(pair[1]); math.Abs(d) > 1e-12 {
			t.Errorf("Basis vectors not orthogonal: dot = %g", d)
		}
	}
	if math.Abs(camera.dist-10) > 1e-12 {
		t.Errorf("Expected screen distance 10, got %g", camera.dist)
	}
	if math.Abs(camera.right-10*math.Tan(math.Pi/6)) > 1e-9 {
		t.Errorf("Unexpected half width %g", camera.right)
	}

	width, height := camera.Size()
	if width != 64 || height != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", width, height)
	}
}
