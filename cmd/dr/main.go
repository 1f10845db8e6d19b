package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "dr",
		Usage: "Watch CLI agent session logs and follow them live",
		Description: `
     _     _    _   _   _
  __| |_ _(_)__| |_| |_(_)
 / _' | '_| (_-< ' \  _| |
 \__,_|_| |_/__/_||_\__|_|

 The watcher of sessions — live token usage and exchanges as they happen.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			showCmd(),
			lsCmd(),
			exportCmd(),
			serveCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
