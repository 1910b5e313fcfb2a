package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a gridSize x gridSize field of small spheres on
// a floor. Large grids are where the KD-tree pays off.
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}

	s := New("sphere-grid")
	s.Background = core.NewVec3(0.5, 0.7, 1.0)
	s.Camera = CameraConfig{
		Eye:    core.NewVec3(4.5, 6, 18),
		LookAt: core.NewVec3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		FovH:   64,
		FovV:   40,
		Width:  384,
		Height: 216,
	}

	s.AddSurface(newSurface("ground", gray(0.05), gray(0.5), gray(0), 1, 0.1))
	mustAdd(s.AddPolygon("ground", []core.Vec3{
		core.NewVec3(-20, 0, 30),
		core.NewVec3(30, 0, 30),
		core.NewVec3(30, 0, -20),
		core.NewVec3(-20, 0, -20),
	}))

	// Fit the grid in a 9x9 area centered on x=z=4.5
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma, maxChroma := 0.05, 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies along x, chroma along z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			reflect := 0.1 + 0.2*float64((i+j)%3)/2.0
			name := fmt.Sprintf("grid-%d-%d", i, j)
			s.AddSurface(newSurface(name, color.Multiply(0.1), color, gray(0.6), 40, reflect))
			mustAdd(s.AddSphere(name, radius, core.NewVec3(x, radius, z)))
		}
	}

	s.AddLight(0.8, core.NewVec3(20, 25, 20))
	s.AddLight(0.3, core.NewVec3(-10, 15, 25))
	return s
}
