package main

import (
	"context"

	"github.com/sonnes/drishti/broadcast"
	"github.com/sonnes/drishti/core"
	"github.com/sonnes/drishti/server"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "root",
			Usage: "Session root directory (default: ~/.claude/projects)",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Port to listen on",
			Value: 8080,
		},
	}
	flags = append(flags, redactFlags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve sessions for live watching in a local web UI",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}

			var transform func(*core.Summary)
			if redactor != nil {
				transform = redactor.Transform
			}

			hub := broadcast.New(broadcast.Options{Transform: transform})
			defer hub.Close()

			srv := &server.Server{
				Hub:  hub,
				Root: sessionRoot(cmd),
				Port: cmd.Int("port"),
			}
			return srv.ListenAndServe()
		},
	}
}
