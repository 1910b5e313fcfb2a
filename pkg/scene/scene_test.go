package scene

import (
	"math"
	"testing"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
)

func TestScene_AddRequiresSurface(t *testing.T) {
	s := New("test")
	if err := s.AddSphere("missing", 1, core.NewVec3(0, 0, 0)); err == nil {
		t.Error("AddSphere() should fail for an undefined surface")
	}
	if err := s.AddPolygon("missing", []core.Vec3{{X: 0}, {X: 1}, {Y: 1}}); err == nil {
		t.Error("AddPolygon() should fail for an undefined surface")
	}
	if len(s.Primitives) != 0 {
		t.Errorf("Failed adds should not add primitives, got %d", len(s.Primitives))
	}
}

func TestBuiltins(t *testing.T) {
	for _, b := range Builtins() {
		t.Run(b.ID, func(t *testing.T) {
			sc := b.Build()
			if sc.Name != b.ID {
				t.Errorf("Scene name = %q, want %q", sc.Name, b.ID)
			}
			if len(sc.Primitives) == 0 {
				t.Error("Built-in scene has no primitives")
			}
			if len(sc.Lights) == 0 {
				t.Error("Built-in scene has no lights")
			}
			if sc.Camera.Width <= 0 || sc.Camera.Height <= 0 {
				t.Errorf("Invalid screen %dx%d", sc.Camera.Width, sc.Camera.Height)
			}
			for i, p := range sc.Primitives {
				if p.Surface() == nil {
					t.Errorf("Primitive %d has no surface", i)
				}
			}

			// A ray at the look point must hit something in every built-in
			ray := core.NewRay(sc.Camera.Eye, sc.Camera.LookAt.Subtract(sc.Camera.Eye))
			for _, kind := range []accel.Kind{accel.KindKDTree, accel.KindList} {
				hit := sc.BuildQuery(kind).NearestHit(ray)
				if !hit.Hit() {
					t.Errorf("%s: center ray missed", kind)
				}
			}
		})
	}
}

func TestLookupBuiltin(t *testing.T) {
	if _, ok := LookupBuiltin("cornell"); !ok {
		t.Error("cornell should be a built-in scene")
	}
	if _, ok := LookupBuiltin("nope"); ok {
		t.Error("nope should not be a built-in scene")
	}
}

func TestSphereGridScene(t *testing.T) {
	testCases := []struct {
		gridSize int
		spheres  int
	}{
		{1, 4}, // clamped to 2x2
		{5, 25},
		{20, 400},
	}

	for _, tc := range testCases {
		sc := NewSphereGridScene(tc.gridSize)
		stats := sc.Stats()
		if stats.Spheres != tc.spheres || stats.Polygons != 1 {
			t.Errorf("grid %d: got %d spheres %d polygons, want %d and 1", tc.gridSize, stats.Spheres, stats.Polygons, tc.spheres)
		}
	}
}

func TestOklchToRGB(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("hue %g: component %g out of range", hue, v)
			}
		}
	}

	// Zero chroma is a neutral gray
	g := oklchToRGB(0.5, 0, 0)
	if math.Abs(g.X-g.Y) > 1e-6 || math.Abs(g.Y-g.Z) > 1e-6 {
		t.Errorf("Zero chroma should be gray, got %v", g)
	}
}
