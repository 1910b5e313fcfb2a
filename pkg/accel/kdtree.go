package accel

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/log"
)

var logger = log.New("kdtree")

// kdNode is one node of the KD-tree. It owns the primitives that straddle
// its splitting plane; children own the primitives entirely on their side.
type kdNode struct {
	objects *ObjectList
	axis    int
	split   float64
	left    *kdNode
	right   *kdNode
}

func (n *kdNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// KDTree is an axis-split spatial index over scene primitives. It is
// read-only once built and safe for concurrent queries.
type KDTree struct {
	root    *kdNode
	minNode int
}

// KDOption configures tree construction
type KDOption func(*KDTree)

// WithMinNodePrimitives stops splitting nodes that hold n or fewer
// primitives. Zero (the default) splits until no primitive can be moved
// to a child.
func WithMinNodePrimitives(n int) KDOption {
	return func(t *KDTree) {
		t.minNode = n
	}
}

// NewKDTree builds a tree from the given list. The tree takes ownership of
// the list: it becomes the root's primitive set and is partitioned in place.
func NewKDTree(list *ObjectList, opts ...KDOption) *KDTree {
	if list == nil {
		list = NewObjectList()
	}

	tree := &KDTree{}
	for _, opt := range opts {
		opt(tree)
	}

	start := time.Now()
	tree.root = &kdNode{objects: list}
	tree.build(tree.root)

	stats := tree.Stats()
	logger.Debugf("built tree over %d primitives in %v: %d nodes, %d leaves, max depth %d",
		stats.Primitives, time.Since(start), stats.Nodes, stats.Leaves, stats.MaxDepth)
	return tree
}

// build recursively splits a node at the midpoint of its longest extent
func (t *KDTree) build(node *kdNode) {
	if t.minNode > 0 && node.objects.Len() <= t.minNode {
		return
	}

	axis, lo, hi := node.objects.DetermineSplitAxis()
	node.axis = axis
	node.split = 0.5 * (lo + hi)

	// Coincident bounds cannot be separated
	if !(hi > lo) {
		return
	}

	left, right := NewObjectList(), NewObjectList()
	for i := 0; i < node.objects.Len(); {
		p := node.objects.Get(i)
		c, r := p.Center().Axis(axis), p.BoundingRadius()

		switch {
		case c+r < node.split:
			left.Append(node.objects.RemoveAt(i))
		case c-r > node.split:
			right.Append(node.objects.RemoveAt(i))
		default:
			// Straddles the plane, stays here
			i++
		}
	}

	if !left.Empty() {
		node.left = &kdNode{objects: left}
		t.build(node.left)
	}
	if !right.Empty() {
		node.right = &kdNode{objects: right}
		t.build(node.right)
	}
}

// NearestHit returns the closest intersection along the ray
func (t *KDTree) NearestHit(ray core.Ray) geometry.Intersection {
	return t.root.nearest(ray, 0)
}

// nearest visits the node's own primitives, then its children from near to
// far. ray is a private copy: its Far bound shrinks as hits are found and is
// handed on to the calls that follow. entry is the parameter at which the
// ray entered this node's half-space.
func (n *kdNode) nearest(ray core.Ray, entry float64) geometry.Intersection {
	if n == nil {
		return geometry.NoHit()
	}

	best := n.objects.Trace(ray)
	if best.Hit() {
		ray.Far = best.T
	}
	if n.isLeaf() {
		return best
	}

	near, far := n.order(ray, entry)
	if hit := near.nearest(ray, entry); hit.Hit() {
		best = best.Closer(hit)
		ray.Far = best.T
	}

	if tPlane, ok := n.crossing(ray, entry); ok {
		best = best.Closer(far.nearest(ray, tPlane))
	}
	return best
}

// Probe reports whether anything is hit along the ray closer than limit
func (t *KDTree) Probe(ray core.Ray, limit float64) bool {
	ray.Far = math.Min(ray.Far, limit)
	return t.root.probe(ray, 0)
}

func (n *kdNode) probe(ray core.Ray, entry float64) bool {
	if n == nil {
		return false
	}
	if n.objects.Probe(ray, ray.Far) {
		return true
	}
	if n.isLeaf() {
		return false
	}

	near, far := n.order(ray, entry)
	if near.probe(ray, entry) {
		return true
	}
	if tPlane, ok := n.crossing(ray, entry); ok {
		return far.probe(ray, tPlane)
	}
	return false
}

// order returns the child on the entry point's side of the plane first. An
// entry point lying on the plane goes to the side the ray points into.
func (n *kdNode) order(ray core.Ray, entry float64) (near, far *kdNode) {
	p := ray.At(entry).Axis(n.axis)
	d := ray.Direction.Axis(n.axis)
	if p < n.split || (p == n.split && d <= 0) {
		return n.left, n.right
	}
	return n.right, n.left
}

// crossing returns the parameter at which the ray crosses the splitting
// plane, and whether that crossing lies between the entry point and the
// current Far bound. A ray parallel to the plane never crosses.
func (n *kdNode) crossing(ray core.Ray, entry float64) (float64, bool) {
	d := ray.Direction.Axis(n.axis)
	if d == 0 {
		return 0, false
	}
	tPlane := (n.split - ray.Origin.Axis(n.axis)) / d
	return tPlane, entry < tPlane && tPlane < ray.Far
}

// IsOccluded implements SceneQuery
func (t *KDTree) IsOccluded(origin, target core.Vec3, maxDistance float64) bool {
	ray := core.NewSegment(origin, target)
	return t.Probe(ray, math.Min(ray.Far, maxDistance))
}

// Count returns the number of primitives held across all nodes
func (t *KDTree) Count() int {
	count := 0
	t.Walk(func(n NodeInfo) {
		count += len(n.Primitives)
	})
	return count
}

// NodeInfo describes one tree node for inspection
type NodeInfo struct {
	Depth      int
	Axis       int
	Split      float64
	Leaf       bool
	Primitives []geometry.Primitive
}

// Walk visits every node in pre-order (node, left subtree, right subtree)
func (t *KDTree) Walk(fn func(NodeInfo)) {
	walk(t.root, 0, fn)
}

func walk(n *kdNode, depth int, fn func(NodeInfo)) {
	if n == nil {
		return
	}
	fn(NodeInfo{
		Depth:      depth,
		Axis:       n.axis,
		Split:      n.split,
		Leaf:       n.isLeaf(),
		Primitives: n.objects.Primitives(),
	})
	walk(n.left, depth+1, fn)
	walk(n.right, depth+1, fn)
}

// Dump writes one line per node: axis, split position and primitive count,
// indented by depth
func (t *KDTree) Dump(w io.Writer) error {
	var err error
	t.Walk(func(n NodeInfo) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%s%s : %g : %d\n",
			strings.Repeat("  ", n.Depth), axisName(n.Axis), n.Split, len(n.Primitives))
	})
	return err
}

func axisName(axis int) string {
	return [...]string{"x", "y", "z"}[axis]
}
