package main

import (
	"context"
	"fmt"
	"os"

	htmlrender "github.com/sonnes/drishti/render/html"
	"github.com/urfave/cli/v3"
)

func exportCmd() *cli.Command {
	flags := targetFlags()
	flags = append(flags,
		&cli.StringFlag{
			Name:  "out",
			Usage: "Output file path (default: stdout)",
		},
	)
	flags = append(flags, redactFlags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export a session snapshot as a standalone HTML page",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := readSummary(cmd)
			if err != nil {
				return err
			}

			out := os.Stdout
			if path := cmd.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				out = f
			}

			return htmlrender.New().Render(out, s)
		},
	}
}
