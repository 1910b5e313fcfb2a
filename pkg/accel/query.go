package accel

import (
	"fmt"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
)

// SceneQuery answers the two questions the shading engine asks of a scene
type SceneQuery interface {
	// NearestHit returns the closest intersection within the ray's interval
	NearestHit(ray core.Ray) geometry.Intersection
	// IsOccluded reports whether anything lies between origin and target,
	// closer to origin than maxDistance
	IsOccluded(origin, target core.Vec3, maxDistance float64) bool
}

// Kind selects the query structure built for a scene
type Kind string

const (
	KindKDTree Kind = "kd"
	KindList   Kind = "list"
	KindBVH    Kind = "bvh"
)

// ParseKind validates an acceleration structure name
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindKDTree, KindList, KindBVH:
		return Kind(name), nil
	case "":
		return KindKDTree, nil
	}
	return "", fmt.Errorf("unknown acceleration structure %q (want kd, list or bvh)", name)
}

// Build creates a query structure of the given kind over the primitives.
// The primitive slice is copied; the caller keeps ownership of it.
func Build(kind Kind, primitives []geometry.Primitive, opts ...KDOption) SceneQuery {
	list := NewObjectList(primitives...)
	switch kind {
	case KindList:
		return list
	case KindBVH:
		return NewBVH(list)
	}
	return NewKDTree(list, opts...)
}

// Counting wraps a SceneQuery and records every query in a QueryStats
type Counting struct {
	query SceneQuery
	stats *core.QueryStats
}

// NewCounting wraps query so that its calls are counted in stats
func NewCounting(query SceneQuery, stats *core.QueryStats) *Counting {
	return &Counting{query: query, stats: stats}
}

// NearestHit implements SceneQuery
func (c *Counting) NearestHit(ray core.Ray) geometry.Intersection {
	c.stats.AddRay()
	return c.query.NearestHit(ray)
}

// IsOccluded implements SceneQuery
func (c *Counting) IsOccluded(origin, target core.Vec3, maxDistance float64) bool {
	c.stats.AddShadowRay()
	return c.query.IsOccluded(origin, target, maxDistance)
}

var (
	_ SceneQuery = (*ObjectList)(nil)
	_ SceneQuery = (*KDTree)(nil)
	_ SceneQuery = (*BVH)(nil)
	_ SceneQuery = (*Counting)(nil)
)
