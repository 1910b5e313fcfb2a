package accel

import (
	"math"
	"sort"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
)

// Leaf threshold: if we have this many or fewer primitives, store them in a
// leaf node
const leafThreshold = 8

// bvhNode is a node in the Bounding Volume Hierarchy
type bvhNode struct {
	bounds      core.AABB
	left, right *bvhNode
	objects     *ObjectList // Primitives for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over the primitives' bounding spheres.
// It answers the same queries as the KD-tree and serves as a baseline.
type BVH struct {
	root *bvhNode
}

// NewBVH builds a BVH from the primitives of list. The list is not modified.
func NewBVH(list *ObjectList) *BVH {
	if list == nil || list.Empty() {
		return &BVH{}
	}

	primitives := make([]geometry.Primitive, list.Len())
	copy(primitives, list.Primitives())
	return &BVH{root: buildBVH(primitives)}
}

// primitiveBounds returns the box around a primitive's bounding sphere
func primitiveBounds(p geometry.Primitive) core.AABB {
	return core.NewAABBFromSphere(p.Center(), p.BoundingRadius())
}

// buildBVH recursively splits at the median along the longest axis
func buildBVH(primitives []geometry.Primitive) *bvhNode {
	bounds := core.EmptyAABB()
	for _, p := range primitives {
		bounds = bounds.Union(primitiveBounds(p))
	}

	if len(primitives) <= leafThreshold {
		return &bvhNode{
			bounds:  bounds,
			objects: NewObjectList(primitives...),
		}
	}

	axis := bounds.LongestAxis()
	sort.SliceStable(primitives, func(i, j int) bool {
		return primitives[i].Center().Axis(axis) < primitives[j].Center().Axis(axis)
	})

	mid := len(primitives) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildBVH(primitives[:mid]),
		right:  buildBVH(primitives[mid:]),
	}
}

// NearestHit returns the closest intersection along the ray
func (b *BVH) NearestHit(ray core.Ray) geometry.Intersection {
	if b.root == nil {
		return geometry.NoHit()
	}
	return b.root.nearest(ray)
}

func (n *bvhNode) nearest(ray core.Ray) geometry.Intersection {
	if !n.bounds.Hit(ray, ray.Near, ray.Far) {
		return geometry.NoHit()
	}
	if n.objects != nil {
		return n.objects.Trace(ray)
	}

	best := n.left.nearest(ray)
	if best.Hit() {
		ray.Far = best.T
	}
	return best.Closer(n.right.nearest(ray))
}

// Probe reports whether anything is hit along the ray closer than limit
func (b *BVH) Probe(ray core.Ray, limit float64) bool {
	if b.root == nil {
		return false
	}
	ray.Far = math.Min(ray.Far, limit)
	return b.root.probe(ray)
}

func (n *bvhNode) probe(ray core.Ray) bool {
	if !n.bounds.Hit(ray, ray.Near, ray.Far) {
		return false
	}
	if n.objects != nil {
		return n.objects.Probe(ray, ray.Far)
	}
	return n.left.probe(ray) || n.right.probe(ray)
}

// IsOccluded implements SceneQuery
func (b *BVH) IsOccluded(origin, target core.Vec3, maxDistance float64) bool {
	ray := core.NewSegment(origin, target)
	return b.Probe(ray, math.Min(ray.Far, maxDistance))
}

// Stats collects statistics about the hierarchy
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if b.root != nil {
		b.root.collectStats(0, &stats)
	}
	if stats.Leaves > 0 {
		stats.AvgDepth /= float64(stats.Leaves)
	}
	return stats
}

func (n *bvhNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if n.objects != nil {
		stats.Leaves++
		stats.Primitives += n.objects.Len()
		stats.AvgDepth += float64(depth)
		return
	}
	n.left.collectStats(depth+1, stats)
	n.right.collectStats(depth+1, stats)
}
