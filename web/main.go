package main

import (
	"os"

	"github.com/df07/go-kd-raytracer/pkg/log"
	"github.com/df07/go-kd-raytracer/web/server"
	"github.com/urfave/cli"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "go-kd-raytracer-web"
	app.Usage = "serve the HTTP render and inspect API"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "dir",
			Usage: "scene directory to scan (default scenes or ../scenes)",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		log.SetLevel(log.Info)

		var dirs []string
		if dir := ctx.String("dir"); dir != "" {
			dirs = append(dirs, dir)
		}
		return server.NewServer(ctx.Int("port"), dirs...).Start()
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
