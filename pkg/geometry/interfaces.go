package geometry

import (
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// Primitive is a renderable shape with a surface. The set of shapes is
// closed: *Sphere and *Polygon.
type Primitive interface {
	// Intersect returns the nearest hit strictly inside the ray's interval
	Intersect(ray core.Ray) Intersection
	// Probe reports whether any hit exists closer than distance
	Probe(ray core.Ray, distance float64) bool
	// Center and BoundingRadius describe a sphere enclosing the shape
	Center() core.Vec3
	BoundingRadius() float64
	// NormalAt returns the unit outward normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	Surface() *material.Surface
}
