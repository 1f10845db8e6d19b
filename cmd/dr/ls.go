package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sonnes/drishti/core"
	"github.com/sonnes/drishti/discover"
	"github.com/urfave/cli/v3"
)

func lsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "List discovered session logs, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Session root directory (default: ~/.claude/projects)",
			},
			&cli.StringFlag{
				Name:  "project",
				Usage: "Only list sessions of this project",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			entries, err := discover.Sessions(sessionRoot(cmd))
			if err != nil {
				return err
			}

			project := cmd.String("project")

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tPROJECT\tSIZE\tMODIFIED")
			for _, e := range entries {
				if project != "" && e.Project != project {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.SessionID, e.Project, formatSize(e.Size), core.RelativeTime(e.ModTime))
			}
			return w.Flush()
		},
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
