package geometry

import "math"

// Intersection is the result of a nearest-hit query. A nil Primitive means
// no hit, in which case T is +Inf.
type Intersection struct {
	Primitive Primitive
	T         float64
}

// NoHit returns the empty intersection
func NoHit() Intersection {
	return Intersection{T: math.Inf(1)}
}

// Hit reports whether the intersection refers to a primitive
func (i Intersection) Hit() bool {
	return i.Primitive != nil
}

// Closer returns whichever of the two intersections has the smaller T.
// A missing hit always loses; equal T keeps the receiver.
func (i Intersection) Closer(other Intersection) Intersection {
	if !other.Hit() {
		return i
	}
	if !i.Hit() || other.T < i.T {
		return other
	}
	return i
}
