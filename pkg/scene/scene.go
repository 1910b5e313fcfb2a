package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/integrator"
	"github.com/df07/go-kd-raytracer/pkg/lights"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

var (
	// ErrParse wraps every scene file syntax or reference error
	ErrParse = errors.New("scene parse error")
	// ErrUnknownScene is returned when a scene name resolves to nothing
	ErrUnknownScene = errors.New("unknown scene")
)

// CameraConfig describes the viewpoint and screen of a scene
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	LookAt core.Vec3 // Point at the center of the screen
	Up     core.Vec3 // Approximate up direction
	FovH   float64   // Horizontal field of view in degrees
	FovV   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// DefaultCameraConfig returns a camera at z=5 looking at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:    core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovH:   45,
		FovV:   45,
		Width:  256,
		Height: 256,
	}
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Background core.Vec3
	Camera     CameraConfig
	Primitives []geometry.Primitive // Objects in the scene
	Lights     []lights.Light       // Point lights in the scene
	Surfaces   map[string]*material.Surface
	MaxDepth   int     // Reflection bounce limit
	CutOff     float64 // Smallest reflection contribution traced
}

// New creates an empty scene with default camera and shading limits
func New(name string) *Scene {
	shading := integrator.DefaultConfig()
	return &Scene{
		Name:     name,
		Camera:   DefaultCameraConfig(),
		Surfaces: make(map[string]*material.Surface),
		MaxDepth: shading.MaxDepth,
		CutOff:   shading.CutOff,
	}
}

// AddSurface registers a named surface, replacing any previous one of the
// same name for primitives added afterwards
func (s *Scene) AddSurface(surface *material.Surface) {
	s.Surfaces[surface.Name] = surface
}

// Surface looks up a named surface
func (s *Scene) Surface(name string) (*material.Surface, error) {
	surface, ok := s.Surfaces[name]
	if !ok {
		return nil, fmt.Errorf("undefined surface %q", name)
	}
	return surface, nil
}

// AddSphere adds a sphere using a previously registered surface
func (s *Scene) AddSphere(surfaceName string, radius float64, center core.Vec3) error {
	surface, err := s.Surface(surfaceName)
	if err != nil {
		return err
	}
	s.Primitives = append(s.Primitives, geometry.NewSphere(center, radius, surface))
	return nil
}

// AddPolygon adds a planar polygon using a previously registered surface
func (s *Scene) AddPolygon(surfaceName string, vertices []core.Vec3) error {
	surface, err := s.Surface(surfaceName)
	if err != nil {
		return err
	}
	polygon, err := geometry.NewPolygon(vertices, surface)
	if err != nil {
		return err
	}
	s.Primitives = append(s.Primitives, polygon)
	return nil
}

// AddLight adds a point light
func (s *Scene) AddLight(intensity float64, position core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// ShadingConfig returns the integrator configuration the scene asks for
func (s *Scene) ShadingConfig() integrator.Config {
	config := integrator.DefaultConfig()
	config.MaxDepth = s.MaxDepth
	config.CutOff = s.CutOff
	return config
}

// BuildQuery creates the acceleration structure of the given kind over the
// scene's primitives
func (s *Scene) BuildQuery(kind accel.Kind, opts ...accel.KDOption) accel.SceneQuery {
	return accel.Build(kind, s.Primitives, opts...)
}

// Stats summarizes scene contents
type Stats struct {
	Spheres  int
	Polygons int
	Lights   int
	Surfaces int
}

// Stats counts the scene's contents by kind
func (s *Scene) Stats() Stats {
	stats := Stats{Lights: len(s.Lights), Surfaces: len(s.Surfaces)}
	for _, p := range s.Primitives {
		switch p.(type) {
		case *geometry.Sphere:
			stats.Spheres++
		case *geometry.Polygon:
			stats.Polygons++
		}
	}
	return stats
}
