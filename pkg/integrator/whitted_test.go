package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/lights"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

func vecClose(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

// matte returns a surface with the given ambient level and a white diffuse
func matte(ambient float64) *material.Surface {
	s := material.NewSurface("matte")
	s.Ambient = core.NewVec3(ambient, ambient, ambient)
	s.Diffuse = core.NewVec3(1, 1, 1)
	return s
}

func TestWhitted_Background(t *testing.T) {
	background := core.NewVec3(0.1, 0.2, 0.3)
	w := NewWhitted(DefaultConfig(), background)

	for _, kind := range []accel.Kind{accel.KindList, accel.KindKDTree} {
		query := accel.Build(kind, nil)
		got := w.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), query, nil)
		if got != background {
			t.Errorf("%s: expected background %v for empty scene, got %v", kind, background, got)
		}
	}
}

func TestWhitted_TerminatesBeforeQuerying(t *testing.T) {
	w := NewWhitted(Config{MaxDepth: 3, CutOff: 0.1}, core.Vec3{})
	stats := &core.QueryStats{}
	query := accel.NewCounting(accel.Build(accel.KindList, []geometry.Primitive{
		geometry.NewSphere(core.Vec3{}, 1, matte(0.5)),
	}), stats)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	tests := []struct {
		name         string
		bounce       int
		contribution float64
	}{
		{"past max depth", 4, 1},
		{"below cutoff", 0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Shade(ray, query, nil, tt.bounce, tt.contribution)
			if got != core.NewVec3(1, 1, 1) {
				t.Errorf("Expected white, got %v", got)
			}
		})
	}
	if stats.Rays() != 0 {
		t.Errorf("Expected no scene queries for terminated rays, got %d", stats.Rays())
	}

	// At the depth limit itself the ray is still traced
	if got := w.Shade(ray, query, nil, 3, 1); !vecClose(got, core.NewVec3(0.5, 0.5, 0.5)) {
		t.Errorf("Expected ambient at bounce == MaxDepth, got %v", got)
	}
}

func TestWhitted_AmbientDiffuseSpecular(t *testing.T) {
	surface := material.NewSurface("shiny")
	surface.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	surface.Diffuse = core.NewVec3(0.5, 0.5, 0.5)
	surface.Specular = core.NewVec3(0.25, 0.25, 0.25)
	surface.SpecPow = 10

	sphere := geometry.NewSphere(core.Vec3{}, 1, surface)
	query := accel.Build(accel.KindKDTree, []geometry.Primitive{sphere})
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	w := NewWhitted(DefaultConfig(), core.Vec3{})

	tests := []struct {
		name     string
		lights   []lights.Light
		expected float64
	}{
		{"no lights is ambient only", nil, 0.1},
		// Head-on light: N·L = N·H = 1
		{"head-on light", []lights.Light{lights.NewPointLight(core.NewVec3(0, 0, 10), 2)}, 0.1 + 1.0 + 0.5},
		{"light behind the sphere", []lights.Light{lights.NewPointLight(core.NewVec3(0, 0, -10), 2)}, 0.1},
		{
			"lights add up",
			[]lights.Light{
				lights.NewPointLight(core.NewVec3(0, 0, 10), 1),
				lights.NewPointLight(core.NewVec3(0, 0, 20), 1),
			},
			0.1 + 2*(0.5+0.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.RayColor(ray, query, tt.lights)
			expected := core.NewVec3(tt.expected, tt.expected, tt.expected)
			if !vecClose(got, expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestWhitted_ShadowModes(t *testing.T) {
	// The hit point (√½, √½, 0) sees the light along the diagonal, where the
	// occluder sits. The primary ray passes well below the occluder.
	target := geometry.NewSphere(core.Vec3{}, 1, matte(0.1))
	occluder := geometry.NewSphere(core.NewVec3(2.5, 2.5, 0), 0.5, matte(0.1))
	light := []lights.Light{lights.NewPointLight(core.NewVec3(5, 5, 0), 1)}
	ray := core.NewRay(core.NewVec3(3, math.Sqrt(0.5), 0), core.NewVec3(-1, 0, 0))

	lit := core.NewVec3(1.1, 1.1, 1.1)
	dark := core.NewVec3(0.1, 0.1, 0.1)

	tests := []struct {
		name     string
		mode     ShadowMode
		occluded bool
		expected core.Vec3
	}{
		{"unoccluded mode, clear path", ShadowUnoccluded, false, lit},
		{"unoccluded mode, blocked path", ShadowUnoccluded, true, dark},
		// Reference mode reproduces the inverted gate: blocked lights shine
		// and visible lights are dropped
		{"reference mode, clear path", ShadowReference, false, dark},
		{"reference mode, blocked path", ShadowReference, true, lit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primitives := []geometry.Primitive{target}
			if tt.occluded {
				primitives = append(primitives, occluder)
			}
			config := DefaultConfig()
			config.Shadow = tt.mode
			w := NewWhitted(config, core.Vec3{})

			for _, kind := range []accel.Kind{accel.KindList, accel.KindKDTree} {
				got := w.RayColor(ray, accel.Build(kind, primitives), light)
				if !vecClose(got, tt.expected) {
					t.Errorf("%s: expected %v, got %v", kind, tt.expected, got)
				}
			}
		})
	}
}

func TestWhitted_PolygonLitFromEitherSide(t *testing.T) {
	square, err := geometry.NewPolygon([]core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}, matte(0))
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	query := accel.Build(accel.KindKDTree, []geometry.Primitive{square})
	w := NewWhitted(DefaultConfig(), core.Vec3{})

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		light  core.Vec3
	}{
		{"front face", core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1), core.NewVec3(0.5, 0.5, 10)},
		{"back face", core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1), core.NewVec3(0.5, 0.5, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.RayColor(core.NewRay(tt.origin, tt.dir), query, []lights.Light{lights.NewPointLight(tt.light, 1)})
			if !vecClose(got, core.NewVec3(1, 1, 1)) {
				t.Errorf("Expected fully lit face, got %v", got)
			}
		})
	}
}

// facingMirrors returns two parallel mirrored squares at z=-1 and z=1
func facingMirrors(t *testing.T, reflect float64) []geometry.Primitive {
	t.Helper()
	mirror := material.NewSurface("mirror")
	mirror.Reflect = reflect

	var primitives []geometry.Primitive
	for _, z := range []float64{-1, 1} {
		p, err := geometry.NewPolygon([]core.Vec3{
			core.NewVec3(-10, -10, z),
			core.NewVec3(10, -10, z),
			core.NewVec3(10, 10, z),
			core.NewVec3(-10, 10, z),
		}, mirror)
		if err != nil {
			t.Fatalf("NewPolygon: %v", err)
		}
		primitives = append(primitives, p)
	}
	return primitives
}

func TestWhitted_ReflectionBounded(t *testing.T) {
	tests := []struct {
		name     string
		reflect  float64
		cutOff   float64
		maxDepth int
	}{
		{"cutoff bound", 0.5, 0.1, 15},
		{"depth bound", 0.9, 0.002, 15},
		{"tight depth", 0.99, 0.002, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &core.QueryStats{}
			query := accel.NewCounting(accel.Build(accel.KindKDTree, facingMirrors(t, tt.reflect)), stats)
			w := NewWhitted(Config{MaxDepth: tt.maxDepth, CutOff: tt.cutOff}, core.Vec3{})

			w.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), query, nil)

			bound := math.Min(float64(tt.maxDepth), math.Ceil(math.Log(tt.cutOff)/math.Log(tt.reflect)))
			bounces := stats.Rays() - 1
			if bounces < 1 {
				t.Fatalf("Expected the ray to bounce between the mirrors, got %d queries", stats.Rays())
			}
			if float64(bounces) > bound {
				t.Errorf("Expected at most %v bounces, got %d", bound, bounces)
			}
		})
	}
}

func TestWhitted_MirrorAddsReflectedColor(t *testing.T) {
	// A mirror at z=-1 facing a red wall behind the camera
	mirror := material.NewSurface("mirror")
	mirror.Reflect = 0.5
	red := material.NewSurface("red")
	red.Ambient = core.NewVec3(1, 0, 0)

	square := func(z float64, s *material.Surface) geometry.Primitive {
		p, err := geometry.NewPolygon([]core.Vec3{
			core.NewVec3(-1, -1, z), core.NewVec3(1, -1, z),
			core.NewVec3(1, 1, z), core.NewVec3(-1, 1, z),
		}, s)
		if err != nil {
			t.Fatalf("NewPolygon: %v", err)
		}
		return p
	}

	query := accel.Build(accel.KindKDTree, []geometry.Primitive{square(-1, mirror), square(5, red)})
	w := NewWhitted(DefaultConfig(), core.Vec3{})

	got := w.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), query, nil)
	if !vecClose(got, core.NewVec3(0.5, 0, 0)) {
		t.Errorf("Expected half-strength red reflection, got %v", got)
	}
}

func TestWhitted_Idempotent(t *testing.T) {
	surface := matte(0.05)
	surface.Specular = core.NewVec3(0.3, 0.3, 0.3)
	surface.SpecPow = 20
	surface.Reflect = 0.4

	query := accel.Build(accel.KindKDTree, []geometry.Primitive{
		geometry.NewSphere(core.NewVec3(-1, 0, 0), 0.8, surface),
		geometry.NewSphere(core.NewVec3(1, 0, 0), 0.8, surface),
		geometry.NewSphere(core.NewVec3(0, 1.5, 0), 0.5, surface),
	})
	sceneLights := []lights.Light{lights.NewPointLight(core.NewVec3(3, 5, 5), 0.8)}
	w := NewWhitted(DefaultConfig(), core.NewVec3(0.2, 0.2, 0.4))

	for _, dir := range []core.Vec3{
		core.NewVec3(-0.2, 0, -1),
		core.NewVec3(0.2, 0.1, -1),
		core.NewVec3(0, 0.3, -1),
	} {
		ray := core.NewRay(core.NewVec3(0, 0, 5), dir)
		first := w.RayColor(ray, query, sceneLights)
		second := w.RayColor(ray, query, sceneLights)
		if first != second {
			t.Errorf("Repeated shading differs: %v vs %v", first, second)
		}
	}
}

func TestParseShadowMode(t *testing.T) {
	tests := []struct {
		name     string
		expected ShadowMode
		wantErr  bool
	}{
		{"", ShadowUnoccluded, false},
		{"unoccluded", ShadowUnoccluded, false},
		{"Reference", ShadowReference, false},
		{"off", ShadowUnoccluded, true},
	}

	for _, tt := range tests {
		mode, err := ParseShadowMode(tt.name)
		if (err != nil) != tt.wantErr || mode != tt.expected {
			t.Errorf("ParseShadowMode(%q) = %v, %v", tt.name, mode, err)
		}
	}
}
