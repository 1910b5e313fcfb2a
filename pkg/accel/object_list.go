package accel

import (
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
)

// ObjectList is an insertion-ordered collection of primitives searched
// linearly. It references primitives without owning them; the same
// primitive may be held by several lists.
type ObjectList struct {
	primitives []geometry.Primitive
}

// NewObjectList creates a list holding the given primitives in order
func NewObjectList(primitives ...geometry.Primitive) *ObjectList {
	list := &ObjectList{primitives: make([]geometry.Primitive, 0, len(primitives))}
	list.primitives = append(list.primitives, primitives...)
	return list
}

// Append adds a primitive to the end of the list
func (l *ObjectList) Append(p geometry.Primitive) {
	l.primitives = append(l.primitives, p)
}

// RemoveAt removes the primitive at index i, keeping the order of the rest
func (l *ObjectList) RemoveAt(i int) geometry.Primitive {
	p := l.primitives[i]
	copy(l.primitives[i:], l.primitives[i+1:])
	l.primitives[len(l.primitives)-1] = nil
	l.primitives = l.primitives[:len(l.primitives)-1]
	return p
}

// Get returns the primitive at index i
func (l *ObjectList) Get(i int) geometry.Primitive {
	return l.primitives[i]
}

// Len returns the number of primitives in the list
func (l *ObjectList) Len() int {
	return len(l.primitives)
}

// Empty reports whether the list holds no primitives
func (l *ObjectList) Empty() bool {
	return len(l.primitives) == 0
}

// Primitives returns the primitives in insertion order. The slice is shared
// with the list and must not be modified.
func (l *ObjectList) Primitives() []geometry.Primitive {
	return l.primitives
}

// Trace returns the nearest intersection among all primitives
func (l *ObjectList) Trace(ray core.Ray) geometry.Intersection {
	best := geometry.NoHit()
	for _, p := range l.primitives {
		best = best.Closer(p.Intersect(ray))
	}
	return best
}

// Probe reports whether any primitive is hit closer than limit
func (l *ObjectList) Probe(ray core.Ray, limit float64) bool {
	for _, p := range l.primitives {
		if p.Probe(ray, limit) {
			return true
		}
	}
	return false
}

// DetermineSplitAxis returns the axis along which the primitives' bounding
// spheres spread the furthest, together with the covered range on that
// axis. Ties go to the lower axis index. An empty list reports axis 0 and
// the range (0, 0).
func (l *ObjectList) DetermineSplitAxis() (axis int, lo, hi float64) {
	if l.Empty() {
		return 0, 0, 0
	}

	bounds := l.Bounds()
	axis = bounds.LongestAxis()
	return axis, bounds.Min.Axis(axis), bounds.Max.Axis(axis)
}

// Bounds returns the box enclosing the bounding spheres of all primitives
func (l *ObjectList) Bounds() core.AABB {
	bounds := core.EmptyAABB()
	for _, p := range l.primitives {
		bounds = bounds.Union(core.NewAABBFromSphere(p.Center(), p.BoundingRadius()))
	}
	return bounds
}

// NearestHit implements SceneQuery
func (l *ObjectList) NearestHit(ray core.Ray) geometry.Intersection {
	return l.Trace(ray)
}

// IsOccluded implements SceneQuery
func (l *ObjectList) IsOccluded(origin, target core.Vec3, maxDistance float64) bool {
	ray := core.NewSegment(origin, target)
	return l.Probe(ray, math.Min(ray.Far, maxDistance))
}
