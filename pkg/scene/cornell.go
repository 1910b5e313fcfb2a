package scene

import (
	"github.com/df07/go-kd-raytracer/pkg/core"
)

// NewCornellScene creates a Cornell box built from polygon walls with a
// mirrored and a glossy sphere inside
func NewCornellScene() *Scene {
	s := New("cornell")
	s.Camera = CameraConfig{
		Eye:    core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovH:   40,
		FovV:   40,
		Width:  256,
		Height: 256,
	}

	s.AddSurface(newSurface("white", gray(0.05), gray(0.73), gray(0), 1, 0))
	s.AddSurface(newSurface("red", core.NewVec3(0.05, 0, 0), core.NewVec3(0.65, 0.05, 0.05), gray(0), 1, 0))
	s.AddSurface(newSurface("green", core.NewVec3(0, 0.05, 0), core.NewVec3(0.12, 0.45, 0.15), gray(0), 1, 0))
	s.AddSurface(newSurface("metal", gray(0.02), gray(0.1), gray(0.9), 200, 0.85))
	s.AddSurface(newSurface("gloss", core.NewVec3(0.03, 0.03, 0.05), core.NewVec3(0.3, 0.3, 0.6), gray(0.5), 40, 0.15))

	// Standard 555 unit box
	const size = 555.0
	quad := func(surface string, corner, u, v core.Vec3) {
		mustAdd(s.AddPolygon(surface, []core.Vec3{
			corner,
			corner.Add(u),
			corner.Add(u).Add(v),
			corner.Add(v),
		}))
	}

	x := core.NewVec3(size, 0, 0)
	y := core.NewVec3(0, size, 0)
	z := core.NewVec3(0, 0, size)

	quad("white", core.NewVec3(0, 0, 0), x, z) // floor
	quad("white", y, x, z)                     // ceiling
	quad("white", z, x, y)                     // back wall
	quad("red", core.NewVec3(0, 0, 0), z, y)   // left wall
	quad("green", x, y, z)                     // right wall

	mustAdd(s.AddSphere("metal", 82.5, core.NewVec3(185, 82.5, 169)))
	mustAdd(s.AddSphere("gloss", 90, core.NewVec3(370, 90, 351)))

	// Light just below the ceiling center
	s.AddLight(0.8, core.NewVec3(278, 540, 278))
	return s
}
