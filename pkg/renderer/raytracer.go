package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/geometry"
	"github.com/df07/go-kd-raytracer/pkg/integrator"
	"github.com/df07/go-kd-raytracer/pkg/log"
	"github.com/df07/go-kd-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Config contains rendering configuration layered over the scene's own
type Config struct {
	Accel             accel.Kind            // Query structure to build
	MinNodePrimitives int                   // KD-tree leaf floor (0 = split until no progress)
	Shadow            integrator.ShadowMode // Shadow probe gate
	MaxDepth          int                   // Reflection bounce limit (0 = scene value)
	CutOff            float64               // Contribution cutoff (0 = scene value)
	TileSize          int                   // Size of each square tile
	NumWorkers        int                   // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Accel:    accel.KindKDTree,
		Shadow:   integrator.ShadowUnoccluded,
		TileSize: 32,
	}
}

// Raytracer renders a scene through its camera with the Whitted integrator
type Raytracer struct {
	scene     *scene.Scene
	config    Config
	camera    *Camera
	query     accel.SceneQuery // uncounted, for inspection
	stats     *core.QueryStats
	tiles     *TileRenderer
	shading   *integrator.Whitted
	buildTime time.Duration
}

// NewRaytracer builds the scene's query structure and prepares rendering
func NewRaytracer(sc *scene.Scene, config Config) *Raytracer {
	var opts []accel.KDOption
	if config.MinNodePrimitives > 0 {
		opts = append(opts, accel.WithMinNodePrimitives(config.MinNodePrimitives))
	}

	start := time.Now()
	query := sc.BuildQuery(config.Accel, opts...)
	buildTime := time.Since(start)
	logger.Infof("built %s query over %d primitives in %v", config.Accel, len(sc.Primitives), buildTime)

	shadingConfig := sc.ShadingConfig()
	if config.MaxDepth > 0 {
		shadingConfig.MaxDepth = config.MaxDepth
	}
	if config.CutOff > 0 {
		shadingConfig.CutOff = config.CutOff
	}
	shadingConfig.Shadow = config.Shadow

	stats := &core.QueryStats{}
	camera := NewCamera(sc.Camera)
	shading := integrator.NewWhitted(shadingConfig, sc.Background)

	return &Raytracer{
		scene:     sc,
		config:    config,
		camera:    camera,
		query:     query,
		stats:     stats,
		tiles:     NewTileRenderer(camera, accel.NewCounting(query, stats), sc.Lights, shading),
		shading:   shading,
		buildTime: buildTime,
	}
}

// KDStats returns the tree statistics when the query is a KD-tree
func (rt *Raytracer) KDStats() (accel.KDStats, bool) {
	tree, ok := rt.query.(*accel.KDTree)
	if !ok {
		return accel.KDStats{}, false
	}
	return tree.Stats(), true
}

// Render renders every pixel in parallel tiles. It returns the context
// error if ctx is cancelled before all tiles finish.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	width, height := rt.camera.Size()
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	pixels := make([][]core.Vec3, height)
	for y := range pixels {
		pixels[y] = make([]core.Vec3, width)
	}

	pool := NewWorkerPool(rt.tiles, rt.config.NumWorkers, len(tiles))
	stats := RenderStats{
		Width:     width,
		Height:    height,
		Tiles:     len(tiles),
		Workers:   pool.GetNumWorkers(),
		Accel:     rt.config.Accel,
		BuildTime: rt.buildTime,
	}
	raysBefore, shadowBefore := rt.stats.Rays(), rt.stats.ShadowRays()

	logger.Infof("rendering %s at %dx%d with %d workers (%d tiles)", rt.scene.Name, width, height, stats.Workers, len(tiles))
	start := time.Now()

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pixels: pixels})
	}

	var renderErr error
	lastDecile := 0
	for done := 1; done <= len(tiles); done++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}

		if decile := done * 10 / len(tiles); decile > lastDecile && renderErr == nil {
			lastDecile = decile
			logger.Infof("%d%% (%d/%d tiles)", decile*10, done, len(tiles))
		}
	}
	pool.Stop()

	stats.RenderTime = time.Since(start)
	stats.Rays = rt.stats.Rays() - raysBefore
	stats.ShadowRays = rt.stats.ShadowRays() - shadowBefore

	if renderErr != nil {
		logger.Warningf("rendering %s stopped: %v", rt.scene.Name, renderErr)
		return nil, stats, renderErr
	}

	logger.Noticef("rendered %s in %v (%d rays, %d shadow rays)", rt.scene.Name, stats.RenderTime, stats.Rays, stats.ShadowRays)
	return pixelsToImage(pixels), stats, nil
}

// pixelsToImage converts a [y][x] color buffer into an RGBA image
func pixelsToImage(pixels [][]core.Vec3) *image.RGBA {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, c := range row {
			img.SetRGBA(x, y, vec3ToColor(c))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA, clamping to the valid range
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// PixelReport describes what the primary ray through one pixel sees
type PixelReport struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Hit       bool      `json:"hit"`
	T         float64   `json:"t,omitempty"`
	Point     core.Vec3 `json:"point"`
	Normal    core.Vec3 `json:"normal"`
	Primitive string    `json:"primitive,omitempty"`
	Surface   string    `json:"surface,omitempty"`
	Color     core.Vec3 `json:"color"`
}

// Inspect traces the primary ray through pixel (x, y) and reports the
// nearest hit and the shaded color. Inspection is not counted in the
// render statistics.
func (rt *Raytracer) Inspect(x, y int) (PixelReport, error) {
	width, height := rt.camera.Size()
	if x < 0 || x >= width || y < 0 || y >= height {
		return PixelReport{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, width, height)
	}

	ray := rt.camera.GetRay(x, y)
	report := PixelReport{
		X:     x,
		Y:     y,
		Color: rt.shading.RayColor(ray, rt.query, rt.scene.Lights),
	}

	hit := rt.query.NearestHit(ray)
	if !hit.Hit() {
		return report, nil
	}

	view := ray.Direction.Negate().Normalize()
	report.Hit = true
	report.T = hit.T
	report.Point = ray.At(hit.T)
	report.Normal = geometry.ShadingNormal(hit.Primitive, report.Point, view)
	report.Primitive = primitiveName(hit.Primitive)
	if s := hit.Primitive.Surface(); s != nil {
		report.Surface = s.Name
	}
	return report, nil
}

func primitiveName(p geometry.Primitive) string {
	switch p.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Polygon:
		return "polygon"
	}
	return fmt.Sprintf("%T", p)
}
