package renderer

import (
	"image"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/integrator"
	"github.com/df07/go-kd-raytracer/pkg/lights"
)

// TileRenderer shades the pixels of a tile with the Whitted integrator.
// Everything it holds is read-only, so one renderer serves every worker.
type TileRenderer struct {
	camera     *Camera
	query      accel.SceneQuery
	lights     []lights.Light
	integrator *integrator.Whitted
}

// NewTileRenderer creates a tile renderer over a built scene query
func NewTileRenderer(camera *Camera, query accel.SceneQuery, sceneLights []lights.Light, integratorInst *integrator.Whitted) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		query:      query,
		lights:     sceneLights,
		integrator: integratorInst,
	}
}

// RenderPixel returns the unclamped color seen through pixel (i, j)
func (tr *TileRenderer) RenderPixel(i, j int) core.Vec3 {
	ray := tr.camera.GetRay(i, j)
	return tr.integrator.RayColor(ray, tr.query, tr.lights)
}

// RenderTileBounds renders the pixels within bounds into pixels, indexed
// [y][x] in image coordinates, and returns the number of pixels written
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixels [][]core.Vec3) int {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			pixels[j][i] = tr.RenderPixel(i, j)
		}
	}
	return bounds.Dx() * bounds.Dy()
}
