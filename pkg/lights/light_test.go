package lights

import (
	"math"
	"testing"

	"github.com/df07/go-kd-raytracer/pkg/core"
)

func TestLight_Toward(t *testing.T) {
	tests := []struct {
		name        string
		light       core.Vec3
		point       core.Vec3
		expectedDir core.Vec3
		expectedD   float64
	}{
		{"straight up", core.NewVec3(0, 10, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10},
		{"offset point", core.NewVec3(3, 4, 0), core.NewVec3(0, 0, 0), core.NewVec3(0.6, 0.8, 0), 5},
		{"light below", core.NewVec3(1, -1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, -1, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(tt.light, 1)
			dir, dist := light.Toward(tt.point)
			if dir.Subtract(tt.expectedDir).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expectedDir, dir)
			}
			if math.Abs(dist-tt.expectedD) > 1e-12 {
				t.Errorf("Expected distance %f, got %f", tt.expectedD, dist)
			}
		})
	}
}
