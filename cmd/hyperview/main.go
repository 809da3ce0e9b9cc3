// Package main is the hyperview command: it renders scenes of 4D polytopes
// projected into 3D.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/lukaszgryglicki/hyperview/internal/hyperview"
)

const (
	flagDebug   = "debug"
	flagProfile = "profile"
	flagPNG     = "png"
	flagRAW     = "raw"
	flagOut     = "out"
	flagFrame   = "frame"

	defaultScene = "scenes/tesseract.json"
)

func sceneArg(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return defaultScene
}

func main() {
	var stopProfile func()

	app := &cli.App{
		Name:  "hyperview",
		Usage: "project 4D polytopes into 3D",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				EnvVars: []string{"DEBUG"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:    flagProfile,
				EnvVars: []string{"PROFILE"},
				Usage:   "write a CPU profile to `FILE`",
			},
		},
		Before: func(c *cli.Context) error {
			var logger golog.Logger
			if c.Bool(flagDebug) {
				logger = golog.NewDebugLogger("hyperview")
			} else {
				logger = golog.NewDevelopmentLogger("hyperview")
			}
			hyperview.SetLogger(logger)

			if path := c.String(flagProfile); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				stopProfile = func() {
					pprof.StopCPUProfile()
					_ = f.Close()
				}
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if stopProfile != nil {
				stopProfile()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "tick through a scene and write an animated GIF or PNG sequence",
				ArgsUsage: "[scene]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagPNG, EnvVars: []string{"PNG"}, Usage: "write a PNG sequence instead of a GIF"},
					&cli.BoolFlag{Name: flagRAW, EnvVars: []string{"RAW"}, Usage: "also write RAW dumps of solid meshes"},
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Usage: "output `FILE` (overrides gifOut)"},
				},
				Action: func(c *cli.Context) error {
					return hyperview.Run(c.Context, sceneArg(c), hyperview.RunOptions{
						PNG: c.Bool(flagPNG),
						RAW: c.Bool(flagRAW),
						Out: c.String(flagOut),
					})
				},
			},
			{
				Name:      "project",
				Usage:     "print the render commands of one frame as JSON",
				ArgsUsage: "[scene]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagFrame, Aliases: []string{"f"}, Usage: "frame index"},
				},
				Action: func(c *cli.Context) error {
					return hyperview.Project(c.Context, sceneArg(c), c.Int(flagFrame), c.App.Writer)
				},
			},
			{
				Name:  "polytopes",
				Usage: "list the built-in polytopes",
				Action: func(c *cli.Context) error {
					infos, err := hyperview.Polytopes()
					if err != nil {
						return errors.Wrap(err, "building catalogue")
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "NAME\tVERTICES\tEDGES")
					for _, p := range infos {
						fmt.Fprintf(w, "%s\t%d\t%d\n", p.Name, p.Vertices, p.Edges)
					}
					return w.Flush()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
