package integrator

import (
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/lights"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// ShadowMode selects how shadow probes gate a light's contribution
type ShadowMode int

const (
	// ShadowUnoccluded lets a light contribute when nothing blocks it
	ShadowUnoccluded ShadowMode = iota
	// ShadowReference lets a light contribute only when the probe finds a
	// blocker, so lit and shadowed regions swap.
	ShadowReference
)

func (m ShadowMode) String() string {
	switch m {
	case ShadowReference:
		return "reference"
	default:
		return "unoccluded"
	}
}

// ParseShadowMode maps "unoccluded" or "reference" to a ShadowMode
func ParseShadowMode(name string) (ShadowMode, error) {
	switch strings.ToLower(name) {
	case "", "unoccluded":
		return ShadowUnoccluded, nil
	case "reference":
		return ShadowReference, nil
	}
	return ShadowUnoccluded, fmt.Errorf("unknown shadow mode %q (want unoccluded or reference)", name)
}

// Config bounds the reflection recursion and picks the shadow gate
type Config struct {
	MaxDepth int     // bounces allowed before a ray is cut off
	CutOff   float64 // smallest contribution worth tracing
	Shadow   ShadowMode
}

// DefaultConfig returns the standard recursion limits
func DefaultConfig() Config {
	return Config{
		MaxDepth: 15,
		CutOff:   0.002,
		Shadow:   ShadowUnoccluded,
	}
}

// Whitted shades rays with ambient, diffuse and specular point lighting and
// recursive mirror reflection
type Whitted struct {
	config     Config
	background core.Vec3
}

// NewWhitted creates a Whitted integrator with the given background color
func NewWhitted(config Config, background core.Vec3) *Whitted {
	return &Whitted{
		config:     config,
		background: background,
	}
}

// Config returns the integrator configuration
func (w *Whitted) Config() Config {
	return w.config
}

// RayColor computes the color seen along a primary ray
func (w *Whitted) RayColor(ray core.Ray, query accel.SceneQuery, sceneLights []lights.Light) core.Vec3 {
	return w.Shade(ray, query, sceneLights, 0, 1)
}

// Shade computes the color seen along ray. bounce counts reflections so far
// and contribution is the weight the result carries in the final pixel.
// The returned color is not clamped.
func (w *Whitted) Shade(ray core.Ray, query accel.SceneQuery, sceneLights []lights.Light, bounce int, contribution float64) core.Vec3 {
	// Recursion limits come first; a cut-off ray saturates to white
	if bounce > w.config.MaxDepth || contribution < w.config.CutOff {
		return core.NewVec3(1, 1, 1)
	}

	hit := query.NearestHit(ray)
	if !hit.Hit() {
		return w.background
	}

	surface := surfaceOf(hit)
	point := ray.At(hit.T)
	view := ray.Direction.Negate().Normalize()
	normal := geometry.ShadingNormal(hit.Primitive, point, view)

	color := surface.Ambient

	for _, light := range sceneLights {
		color = color.Add(w.directLight(light, point, normal, view, hit, query))
	}

	if surface.IsReflective() {
		reflected := view.Negate().Add(normal.Multiply(2 * normal.Dot(view)))
		reflectRay := core.NewRayInterval(point, reflected, core.Epsilon, math.Inf(1))
		bounced := w.Shade(reflectRay, query, sceneLights, bounce+1, contribution*surface.Reflect)
		color = color.Add(bounced.Multiply(surface.Reflect))
	}

	return color
}

// directLight returns the diffuse and specular contribution of one light
func (w *Whitted) directLight(light lights.Light, point, normal, view core.Vec3, hit geometry.Intersection, query accel.SceneQuery) core.Vec3 {
	toLight, distance := light.Toward(point)

	occluded := query.IsOccluded(point, light.Position, distance)
	if occluded != (w.config.Shadow == ShadowReference) {
		return core.Vec3{}
	}

	nDotL := normal.Dot(toLight)
	if nDotL <= 0 {
		return core.Vec3{}
	}

	surface := surfaceOf(hit)
	color := surface.DiffuseTerm(light.Intensity, nDotL)

	half := toLight.Add(view).Normalize()
	if nDotH := normal.Dot(half); nDotH > 0 {
		color = color.Add(surface.SpecularTerm(light.Intensity, nDotH))
	}
	return color
}

// surfaceOf falls back to the default gray for primitives built without one
func surfaceOf(hit geometry.Intersection) *material.Surface {
	if s := hit.Primitive.Surface(); s != nil {
		return s
	}
	return material.Default()
}
