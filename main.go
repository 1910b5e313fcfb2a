package main

import (
	"os"

	"github.com/df07/go-kd-raytracer/cmd"
	"github.com/df07/go-kd-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-kd-raytracer"
	app.Usage = "render scenes with a KD-tree accelerated Whitted ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene or a .ray scene file with one ray per pixel.

Scene arguments name a built-in scene (see the scenes command), a scene file
found in the scenes directory, or a path to a .ray file.`,
			ArgsUsage: "scene",
			Flags:     cmd.RenderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:      "info",
			Usage:     "display scene and KD-tree statistics",
			ArgsUsage: "scene",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "min-node",
					Usage: "stop splitting KD-tree nodes holding at most this many primitives",
				},
				cli.BoolFlag{
					Name:  "dump",
					Usage: "print the KD-tree node by node",
				},
				cli.BoolFlag{
					Name:  "bvh",
					Usage: "also build a BVH over the scene and print its statistics",
				},
			},
			Action: cmd.ShowSceneInfo,
		},
		{
			Name:  "scenes",
			Usage: "list built-in and discovered scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Usage: "scene directory to scan (default scenes or ../scenes)",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the HTTP render and inspect API",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "dir",
					Usage: "scene directory to scan (default scenes or ../scenes)",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("raytracer").Error(err)
		os.Exit(1)
	}
}
