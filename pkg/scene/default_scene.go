package scene

import (
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// newSurface builds a named surface from its lighting coefficients
func newSurface(name string, ambient, diffuse, specular core.Vec3, specPow, reflect float64) *material.Surface {
	return &material.Surface{
		Name:     name,
		Ambient:  ambient,
		Diffuse:  diffuse,
		Specular: specular,
		SpecPow:  specPow,
		Reflect:  reflect,
	}
}

// gray returns a color with equal channels
func gray(v float64) core.Vec3 {
	return core.NewVec3(v, v, v)
}

// mustAdd panics on errors from built-in scene construction, which only
// fails on programming mistakes
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

// NewDefaultScene creates three spheres of different surfaces on a
// reflective floor, lit by two point lights
func NewDefaultScene() *Scene {
	s := New("default")
	s.Background = core.NewVec3(0.1, 0.1, 0.2)
	s.Camera = CameraConfig{
		Eye:    core.NewVec3(0, 1.5, 6),
		LookAt: core.NewVec3(0, 0.5, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovH:   50,
		FovV:   38,
		Width:  320,
		Height: 240,
	}

	s.AddSurface(newSurface("floor", gray(0.05), gray(0.6), gray(0.1), 8, 0.2))
	s.AddSurface(newSurface("red", core.NewVec3(0.1, 0.02, 0.02), core.NewVec3(0.7, 0.1, 0.1), gray(0.3), 20, 0))
	s.AddSurface(newSurface("mirror", gray(0.02), gray(0.1), gray(0.8), 100, 0.8))
	s.AddSurface(newSurface("blue", core.NewVec3(0.02, 0.02, 0.1), core.NewVec3(0.1, 0.2, 0.7), gray(0.6), 60, 0.1))

	// Large but finite floor so it has bounds
	const half = 10.0
	mustAdd(s.AddPolygon("floor", []core.Vec3{
		core.NewVec3(-half, 0, half),
		core.NewVec3(half, 0, half),
		core.NewVec3(half, 0, -half),
		core.NewVec3(-half, 0, -half),
	}))

	mustAdd(s.AddSphere("red", 0.5, core.NewVec3(-1.2, 0.5, 0)))
	mustAdd(s.AddSphere("mirror", 0.75, core.NewVec3(0, 0.75, -0.8)))
	mustAdd(s.AddSphere("blue", 0.4, core.NewVec3(1.2, 0.4, 0.5)))

	s.AddLight(0.7, core.NewVec3(5, 8, 6))
	s.AddLight(0.4, core.NewVec3(-6, 5, 4))
	return s
}
