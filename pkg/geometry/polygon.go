package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// ErrDegeneratePolygon is returned for polygons that do not span a plane
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Polygon is a planar polygon given by its vertex loop. Concave loops are
// supported; the vertices are assumed to be coplanar.
type Polygon struct {
	Vertices []core.Vec3
	normal   core.Vec3
	centroid core.Vec3
	radius   float64
	// dominant normal axis, dropped when projecting to 2D
	dropAxis int
	surface  *material.Surface
}

// NewPolygon creates a polygon from at least three non-collinear vertices
func NewPolygon(vertices []core.Vec3, surface *material.Surface) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 vertices, got %d", ErrDegeneratePolygon, len(vertices))
	}

	normal := newellNormal(vertices)
	if normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: vertices are collinear", ErrDegeneratePolygon)
	}
	normal = normal.Normalize()

	centroid := core.Vec3{}
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Multiply(1.0 / float64(len(vertices)))

	radius := 0.0
	for _, v := range vertices {
		radius = math.Max(radius, v.Subtract(centroid).Length())
	}

	dropAxis := 0
	for axis := 1; axis < 3; axis++ {
		if math.Abs(normal.Axis(axis)) > math.Abs(normal.Axis(dropAxis)) {
			dropAxis = axis
		}
	}

	verts := make([]core.Vec3, len(vertices))
	copy(verts, vertices)

	return &Polygon{
		Vertices: verts,
		normal:   normal,
		centroid: centroid,
		radius:   radius,
		dropAxis: dropAxis,
		surface:  surface,
	}, nil
}

// newellNormal computes an (unnormalized) polygon normal that is robust to
// concave loops
func newellNormal(vertices []core.Vec3) core.Vec3 {
	var n core.Vec3
	for i, cur := range vertices {
		next := vertices[(i+1)%len(vertices)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// Intersect tests the ray against the polygon's plane, then the loop
func (p *Polygon) Intersect(ray core.Ray) Intersection {
	denom := p.normal.Dot(ray.Direction)
	if denom == 0 {
		// Parallel to the plane
		return NoHit()
	}

	t := p.normal.Dot(p.Vertices[0].Subtract(ray.Origin)) / denom
	if t < 0 || !ray.Contains(t) {
		return NoHit()
	}

	if !p.Contains(ray.At(t)) {
		return NoHit()
	}
	return Intersection{Primitive: p, T: t}
}

// Contains reports whether a point on the polygon's plane lies inside the
// loop, using an even-odd crossing test in the dominant projection plane
func (p *Polygon) Contains(point core.Vec3) bool {
	uAxis, vAxis := (p.dropAxis+1)%3, (p.dropAxis+2)%3
	pu, pv := point.Axis(uAxis), point.Axis(vAxis)

	inside := false
	n := len(p.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		ui, vi := p.Vertices[i].Axis(uAxis), p.Vertices[i].Axis(vAxis)
		uj, vj := p.Vertices[j].Axis(uAxis), p.Vertices[j].Axis(vAxis)
		if (vi > pv) != (vj > pv) && pu < (uj-ui)*(pv-vi)/(vj-vi)+ui {
			inside = !inside
		}
	}
	return inside
}

// Probe reports whether the ray hits the polygon closer than distance
func (p *Polygon) Probe(ray core.Ray, distance float64) bool {
	return p.Intersect(ray.WithFar(math.Min(ray.Far, distance))).Hit()
}

// Center returns the vertex centroid
func (p *Polygon) Center() core.Vec3 {
	return p.centroid
}

// BoundingRadius returns the distance from the centroid to the farthest
// vertex, which encloses the polygon but is not tight
func (p *Polygon) BoundingRadius() float64 {
	return p.radius
}

// NormalAt returns the plane normal given by the vertex winding
func (p *Polygon) NormalAt(core.Vec3) core.Vec3 {
	return p.normal
}

// Surface returns the polygon's surface
func (p *Polygon) Surface() *material.Surface {
	return p.surface
}

// ShadingNormal returns the normal used for lighting a hit seen along view
// (the unit vector from the hit point back toward the viewer). Polygons are
// two-sided, so their normal is flipped toward the viewer; spheres keep the
// outward normal.
func ShadingNormal(prim Primitive, point, view core.Vec3) core.Vec3 {
	n := prim.NormalAt(point)
	if _, ok := prim.(*Polygon); ok && n.Dot(view) < 0 {
		return n.Negate()
	}
	return n
}
