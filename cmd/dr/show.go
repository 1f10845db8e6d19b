package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func showCmd() *cli.Command {
	flags := targetFlags()
	flags = append(flags,
		&cli.StringFlag{
			Name:  "o",
			Usage: "Output format: terminal, json, html",
			Value: "terminal",
		},
	)
	flags = append(flags, redactFlags()...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show the current summary of a session log",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp()

			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			s, err := readSummary(cmd)
			if err != nil {
				return err
			}

			if err := rnd.Render(os.Stdout, s); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
