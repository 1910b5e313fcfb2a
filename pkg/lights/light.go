package lights

import (
	"github.com/df07/go-kd-raytracer/pkg/core"
)

// Light is a point light with a scalar intensity applied equally to every
// color channel
type Light struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a point light
func NewPointLight(position core.Vec3, intensity float64) Light {
	return Light{Position: position, Intensity: intensity}
}

// Toward returns the unit direction from point to the light and the
// distance between them
func (l Light) Toward(point core.Vec3) (core.Vec3, float64) {
	delta := l.Position.Subtract(point)
	return delta.Normalize(), delta.Length()
}
