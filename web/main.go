package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-mirror-raytracer/pkg/log"
	"github.com/df07/go-mirror-raytracer/web/server"
)

var logger = log.New("web")

func serve(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}

	port := ctx.Int("port")
	webServer := server.NewServer(port, ctx.String("static"))

	logger.Noticef("Mirror Raytracer Web Server")
	logger.Noticef("Visit http://localhost:%d to start rendering", port)
	return webServer.Start()
}

func main() {
	app := cli.NewApp()
	app.Name = "go-mirror-raytracer-web"
	app.Usage = "serve a browser client that shows renders tile by tile"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "static",
			Value: "static",
			Usage: "directory with the browser client",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "log render starts and completions",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "also log every tile",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
