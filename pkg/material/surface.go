package material

import (
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
)

// Surface holds the Phong lighting coefficients shared by every primitive
// that references the same named surface.
type Surface struct {
	Name     string
	Ambient  core.Vec3 // Color returned regardless of lighting
	Diffuse  core.Vec3 // Lambertian response
	Specular core.Vec3 // Highlight color
	SpecPow  float64   // Highlight exponent
	Reflect  float64   // Mirror reflectivity in [0,1]
}

// NewSurface creates a named black, non-reflective surface
func NewSurface(name string) *Surface {
	return &Surface{Name: name}
}

// Default returns the surface assigned to primitives that name none
func Default() *Surface {
	return &Surface{Name: "default", Diffuse: core.NewVec3(0.5, 0.5, 0.5)}
}

// IsReflective reports whether reflection rays should be spawned
func (s *Surface) IsReflective() bool {
	return s.Reflect > 0
}

// DiffuseTerm returns intensity × diffuse × (N·L), or black when the light
// is behind the surface.
func (s *Surface) DiffuseTerm(intensity, nDotL float64) core.Vec3 {
	if nDotL <= 0 {
		return core.Vec3{}
	}
	return s.Diffuse.Multiply(intensity * nDotL)
}

// SpecularTerm returns intensity × specular × (N·H)^SpecPow, or black when
// the half vector faces away.
func (s *Surface) SpecularTerm(intensity, nDotH float64) core.Vec3 {
	if nDotH <= 0 {
		return core.Vec3{}
	}
	return s.Specular.Multiply(intensity * math.Pow(nDotH, s.SpecPow))
}
