package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display scene, KD-tree and BVH statistics.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	sc, err := scene.Resolve(ctx.Args().First())
	if err != nil {
		return err
	}

	var opts []accel.KDOption
	if n := ctx.Int("min-node"); n > 0 {
		opts = append(opts, accel.WithMinNodePrimitives(n))
	}
	tree := accel.NewKDTree(accel.NewObjectList(sc.Primitives...), opts...)

	fmt.Fprint(ctx.App.Writer, sceneTable(sc))
	fmt.Fprint(ctx.App.Writer, tree.Stats().Table())
	if ctx.Bool("bvh") {
		bvh := accel.NewBVH(accel.NewObjectList(sc.Primitives...))
		fmt.Fprint(ctx.App.Writer, bvh.Stats().Table())
	}

	if ctx.Bool("dump") {
		return tree.Dump(ctx.App.Writer)
	}
	return nil
}

// sceneTable renders the scene summary as a text table
func sceneTable(sc *scene.Scene) string {
	stats := sc.Stats()
	cam := sc.Camera

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", sc.Name})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", stats.Spheres)})
	table.Append([]string{"Polygons", fmt.Sprintf("%d", stats.Polygons)})
	table.Append([]string{"Lights", fmt.Sprintf("%d", stats.Lights)})
	table.Append([]string{"Surfaces", fmt.Sprintf("%d", stats.Surfaces)})
	table.Append([]string{"Screen", fmt.Sprintf("%dx%d", cam.Width, cam.Height)})
	table.Append([]string{"Field of view", fmt.Sprintf("%g x %g", cam.FovH, cam.FovV)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", sc.MaxDepth)})
	table.Append([]string{"Cutoff", fmt.Sprintf("%g", sc.CutOff)})

	table.Render()
	return buf.String()
}

// List built-in and discovered scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var dirs []string
	if dir := ctx.String("dir"); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("scene directory: %w", err)
		}
		dirs = append(dirs, dir)
	}

	response, err := scene.ListAllScenes(dirs...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	count := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
			count++
		}
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", count)})
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
