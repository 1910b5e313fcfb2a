package core

import "math"

// Epsilon is the near bound given to secondary rays so they do not
// re-intersect the surface they leave from.
const Epsilon = 1e-4

// Ray represents a ray with an origin, a direction and the open parametric
// interval (Near, Far) in which intersections are accepted.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // not required to be unit length
	Near      float64
	Far       float64
}

// NewRay creates a ray accepting every hit in front of its origin
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Near: 0, Far: math.Inf(1)}
}

// NewRayInterval creates a ray with an explicit valid interval
func NewRayInterval(origin, direction Vec3, near, far float64) Ray {
	return Ray{Origin: origin, Direction: direction, Near: near, Far: far}
}

// NewSegment creates a unit-direction ray from one point toward another.
// Far is the distance between the points.
func NewSegment(from, to Vec3) Ray {
	delta := to.Subtract(from)
	return Ray{
		Origin:    from,
		Direction: delta.Normalize(),
		Near:      Epsilon,
		Far:       delta.Length(),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies strictly inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return r.Near < t && t < r.Far
}

// WithFar returns a copy of the ray with its far bound replaced
func (r Ray) WithFar(far float64) Ray {
	r.Far = far
	return r
}
