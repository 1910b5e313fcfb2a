package renderer

import (
	"math"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/scene"
)

// Camera generates one primary ray per pixel from a pinhole at the eye
// point through a screen centered on the look point
type Camera struct {
	eye     core.Vec3
	u, v, w core.Vec3 // right, up and backward basis vectors
	dist    float64   // eye to screen distance
	right   float64   // half screen width in world units
	top     float64   // half screen height in world units
	width   int
	height  int
}

// NewCamera creates a camera from a scene's camera configuration
func NewCamera(config scene.CameraConfig) *Camera {
	toEye := config.Eye.Subtract(config.LookAt)
	w := toEye.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	dist := toEye.Length()
	degToRad := math.Pi / 180.0

	return &Camera{
		eye:    config.Eye,
		u:      u,
		v:      v,
		w:      w,
		dist:   dist,
		right:  dist * math.Tan(config.FovH*degToRad/2),
		top:    dist * math.Tan(config.FovV*degToRad/2),
		width:  config.Width,
		height: config.Height,
	}
}

// GetRay returns the ray through the center of pixel (i, j). Row 0 is the
// top of the image. The direction is not normalized.
func (c *Camera) GetRay(i, j int) core.Ray {
	us := -c.right + 2*c.right*(float64(i)+0.5)/float64(c.width)
	vs := c.top - 2*c.top*(float64(j)+0.5)/float64(c.height)

	direction := c.w.Multiply(-c.dist).
		Add(c.u.Multiply(us)).
		Add(c.v.Multiply(vs))

	return core.NewRay(c.eye, direction)
}

// Size returns the image dimensions in pixels
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}
