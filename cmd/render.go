package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/integrator"
	"github.com/df07/go-kd-raytracer/pkg/output"
	"github.com/df07/go-kd-raytracer/pkg/renderer"
	"github.com/df07/go-kd-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename (default output/<scene>/render_<timestamp>.<format>)",
	},
	cli.StringFlag{
		Name:  "format, f",
		Usage: "image format: ppm or png (default from --out extension, else png)",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (default from scene)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (default from scene)",
	},
	cli.StringFlag{
		Name:  "accel",
		Value: string(accel.KindKDTree),
		Usage: "scene query structure: kd, list or bvh",
	},
	cli.IntFlag{
		Name:  "min-node",
		Usage: "stop splitting KD-tree nodes holding at most this many primitives",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (default CPU count)",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: renderer.DefaultConfig().TileSize,
		Usage: "tile size in pixels",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Usage: "reflection bounce limit (default from scene)",
	},
	cli.Float64Flag{
		Name:  "cutoff",
		Usage: "smallest reflection contribution traced (default from scene)",
	},
	cli.StringFlag{
		Name:  "shadow",
		Value: integrator.ShadowUnoccluded.String(),
		Usage: "shadow gate: unoccluded or reference",
	},
}

// RenderFrame renders a scene to an image file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	sc, err := scene.Resolve(ctx.Args().First())
	if err != nil {
		return err
	}
	if w := ctx.Int("width"); w > 0 {
		sc.Camera.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		sc.Camera.Height = h
	}

	config, err := renderConfig(ctx)
	if err != nil {
		return err
	}

	outPath, format, err := outputTarget(ctx.String("out"), ctx.String("format"), sc.Name, time.Now())
	if err != nil {
		return err
	}

	img, stats, err := renderer.NewRaytracer(sc, config).Render(context.Background())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := output.Save(outPath, format, img); err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", stats.Table())
	logger.Noticef("render saved as %s", outPath)
	return nil
}

// renderConfig builds the renderer configuration from command flags
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()

	kind, err := accel.ParseKind(ctx.String("accel"))
	if err != nil {
		return config, err
	}
	shadow, err := integrator.ParseShadowMode(ctx.String("shadow"))
	if err != nil {
		return config, err
	}

	config.Accel = kind
	config.Shadow = shadow
	config.MinNodePrimitives = ctx.Int("min-node")
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile")
	config.MaxDepth = ctx.Int("max-depth")
	config.CutOff = ctx.Float64("cutoff")
	return config, nil
}

// outputTarget picks the output file and format. An explicit format wins,
// then the file extension, then PNG. Without a file name the image goes to
// a timestamped file under output/<scene>.
func outputTarget(out, formatName, sceneName string, now time.Time) (string, output.Format, error) {
	format := output.FormatPNG
	var err error
	switch {
	case formatName != "":
		format, err = output.ParseFormat(formatName)
	case filepath.Ext(out) != "":
		format, err = output.FormatFromPath(out)
	}
	if err != nil {
		return "", "", err
	}

	if out == "" {
		timestamp := now.Format("20060102_150405")
		out = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format))
	}
	return out, format, nil
}
