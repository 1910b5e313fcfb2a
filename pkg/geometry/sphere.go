package geometry

import (
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	center  core.Vec3
	Radius  float64
	surface *material.Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, surface *material.Surface) *Sphere {
	return &Sphere{
		center:  center,
		Radius:  radius,
		surface: surface,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return NoHit()
	}

	// Tangential ray: a single root
	if discriminant == 0 {
		return s.accept(ray, -halfB/a)
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	if hit := s.accept(ray, (-halfB-sqrtD)/a); hit.Hit() {
		return hit
	}
	return s.accept(ray, (-halfB+sqrtD)/a)
}

// accept turns a root into a hit when it is in front of the origin and
// inside the ray's interval
func (s *Sphere) accept(ray core.Ray, root float64) Intersection {
	if root < 0 || !ray.Contains(root) {
		return NoHit()
	}
	return Intersection{Primitive: s, T: root}
}

// Probe reports whether the ray hits the sphere closer than distance
func (s *Sphere) Probe(ray core.Ray, distance float64) bool {
	return s.Intersect(ray.WithFar(math.Min(ray.Far, distance))).Hit()
}

// Center returns the sphere center
func (s *Sphere) Center() core.Vec3 {
	return s.center
}

// BoundingRadius returns the sphere radius; spheres bound themselves exactly
func (s *Sphere) BoundingRadius() float64 {
	return s.Radius
}

// NormalAt returns the outward normal, pointing from the center to point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.center).Normalize()
}

// Surface returns the sphere's surface
func (s *Sphere) Surface() *material.Surface {
	return s.surface
}
