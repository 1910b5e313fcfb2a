package cmd

import (
	"github.com/df07/go-kd-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve the HTTP render and inspect API.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	var dirs []string
	if dir := ctx.String("dir"); dir != "" {
		dirs = append(dirs, dir)
	}

	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
	return server.NewServer(ctx.Int("port"), dirs...).Start()
}
