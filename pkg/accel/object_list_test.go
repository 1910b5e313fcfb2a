package accel

import (
	"math"
	"testing"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// MockPrimitive for testing
type MockPrimitive struct {
	center core.Vec3
	radius float64
	hitFn  func(ray core.Ray) float64 // returns the hit t, or +Inf
	calls  *int
}

func (m *MockPrimitive) Intersect(ray core.Ray) geometry.Intersection {
	if m.calls != nil {
		*m.calls++
	}
	t := m.hitFn(ray)
	if math.IsInf(t, 1) || !ray.Contains(t) {
		return geometry.NoHit()
	}
	return geometry.Intersection{Primitive: m, T: t}
}

func (m *MockPrimitive) Probe(ray core.Ray, distance float64) bool {
	return m.Intersect(ray.WithFar(math.Min(ray.Far, distance))).Hit()
}

func (m *MockPrimitive) Center() core.Vec3 {
	return m.center
}

func (m *MockPrimitive) BoundingRadius() float64 {
	return m.radius
}

func (m *MockPrimitive) NormalAt(core.Vec3) core.Vec3 {
	return core.NewVec3(0, 0, 1)
}

func (m *MockPrimitive) Surface() *material.Surface {
	return nil
}

func alwaysAt(t float64) func(core.Ray) float64 {
	return func(core.Ray) float64 { return t }
}

func never(core.Ray) float64 {
	return math.Inf(1)
}

func TestObjectList_AppendRemove(t *testing.T) {
	a := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	b := geometry.NewSphere(core.NewVec3(1, 0, 0), 1, nil)
	c := geometry.NewSphere(core.NewVec3(2, 0, 0), 1, nil)

	list := NewObjectList()
	if !list.Empty() {
		t.Fatal("New list should be empty")
	}

	list.Append(a)
	list.Append(b)
	list.Append(c)
	if list.Len() != 3 {
		t.Fatalf("Expected 3 primitives, got %d", list.Len())
	}

	removed := list.RemoveAt(1)
	if removed != b {
		t.Errorf("Expected to remove b, got %v", removed)
	}
	if list.Len() != 2 || list.Get(0) != a || list.Get(1) != c {
		t.Errorf("Expected [a c] after removal, got %v", list.Primitives())
	}
}

func TestObjectList_DetermineSplitAxis(t *testing.T) {
	tests := []struct {
		name       string
		primitives []geometry.Primitive
		axis       int
		lo, hi     float64
	}{
		{"empty", nil, 0, 0, 0},
		{
			"single sphere ties to x",
			[]geometry.Primitive{geometry.NewSphere(core.NewVec3(1, 2, 3), 2, nil)},
			0, -1, 3,
		},
		{
			"spread along y",
			[]geometry.Primitive{
				geometry.NewSphere(core.NewVec3(0, -5, 0), 1, nil),
				geometry.NewSphere(core.NewVec3(0, 5, 0), 1, nil),
			},
			1, -6, 6,
		},
		{
			"radius widens z",
			[]geometry.Primitive{
				geometry.NewSphere(core.NewVec3(-1, 0, 0), 0.5, nil),
				geometry.NewSphere(core.NewVec3(1, 0, 0), 0.5, nil),
				geometry.NewSphere(core.NewVec3(0, 0, 0), 2, nil),
			},
			0, -2, 2, // x and z both span [-2, 2]: lower axis wins
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, lo, hi := NewObjectList(tt.primitives...).DetermineSplitAxis()
			if axis != tt.axis || lo != tt.lo || hi != tt.hi {
				t.Errorf("Expected (%d, %g, %g), got (%d, %g, %g)", tt.axis, tt.lo, tt.hi, axis, lo, hi)
			}
		})
	}
}

func TestObjectList_Trace(t *testing.T) {
	near := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	far := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, nil)
	list := NewObjectList(far, near)

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit := list.Trace(ray)
	if hit.Primitive != near || math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected near sphere at t=4, got %+v", hit)
	}

	miss := list.Trace(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)))
	if miss.Hit() {
		t.Errorf("Expected miss, got %+v", miss)
	}

	if NewObjectList().Trace(ray).Hit() {
		t.Error("Expected empty list to miss")
	}
}

func TestObjectList_ProbeShortCircuits(t *testing.T) {
	calls := 0
	list := NewObjectList(
		&MockPrimitive{hitFn: alwaysAt(1), calls: &calls},
		&MockPrimitive{hitFn: alwaysAt(2), calls: &calls},
		&MockPrimitive{hitFn: alwaysAt(3), calls: &calls},
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	if !list.Probe(ray, 10) {
		t.Fatal("Expected probe hit")
	}
	if calls != 1 {
		t.Errorf("Expected probe to stop after first hit, got %d intersection calls", calls)
	}

	calls = 0
	if list.Probe(ray, 1) {
		t.Error("Expected limit to be exclusive")
	}
	if calls != 3 {
		t.Errorf("Expected every primitive to be tested on a miss, got %d", calls)
	}
}

func TestObjectList_IsOccluded(t *testing.T) {
	blocker := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	list := NewObjectList(blocker)

	origin := core.NewVec3(0, 0, 5)
	if !list.IsOccluded(origin, core.NewVec3(0, 0, -5), 10) {
		t.Error("Expected sphere between the points to occlude")
	}
	if list.IsOccluded(origin, core.NewVec3(0, 0, 3), 2) {
		t.Error("Expected no occlusion before the sphere")
	}
	if list.IsOccluded(origin, core.NewVec3(0, 0, -5), 3) {
		t.Error("Expected maxDistance to stop short of the sphere")
	}
}
