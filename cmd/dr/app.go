package main

import (
	"fmt"

	"github.com/sonnes/drishti/core"
	"github.com/sonnes/drishti/discover"
	"github.com/sonnes/drishti/reader/claude"
	"github.com/sonnes/drishti/redact"
	"github.com/sonnes/drishti/render"
	htmlrender "github.com/sonnes/drishti/render/html"
	jsonrender "github.com/sonnes/drishti/render/json"
	"github.com/sonnes/drishti/render/terminal"
	"github.com/urfave/cli/v3"
)

// app holds the renderer registry used by CLI commands.
type app struct {
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return &jsonrender.Renderer{Indent: true} },
			"html":     func() render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// sessionRoot returns the --root flag, falling back to the default
// ~/.claude/projects location.
func sessionRoot(cmd *cli.Command) string {
	if root := cmd.String("root"); root != "" {
		return root
	}
	return discover.DefaultRoot()
}

// resolvePath resolves the target log path from CLI flags. Exactly one of
// --file or --session must be set.
func resolvePath(cmd *cli.Command) (string, error) {
	file := cmd.String("file")
	session := cmd.String("session")

	switch {
	case file != "" && session != "":
		return "", fmt.Errorf("only one of --file or --session may be specified")
	case file != "":
		return file, nil
	case session != "":
		entry, err := discover.Find(sessionRoot(cmd), session)
		if err != nil {
			return "", err
		}
		return entry.Path, nil
	default:
		return "", fmt.Errorf("one of --file or --session is required")
	}
}

// readSummary derives and optionally redacts the summary for the target log.
func readSummary(cmd *cli.Command) (*core.Summary, error) {
	path, err := resolvePath(cmd)
	if err != nil {
		return nil, err
	}

	s := (&claude.Reader{}).ReadFile(path)

	redactor, err := newRedactor(cmd)
	if err != nil {
		return nil, err
	}
	if redactor != nil {
		redactor.Transform(s)
	}
	return s, nil
}

// newRedactor builds a Redactor from CLI flags. Returns nil when --no-redact is set.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	if cmd.Bool("no-redact") {
		return nil, nil
	}

	cfg := redact.Config{}
	rules := cmd.StringSlice("redact")

	if len(rules) == 0 {
		cfg.Secrets = true
		cfg.PII = true
	} else {
		for _, r := range rules {
			switch r {
			case "secrets":
				cfg.Secrets = true
			case "pii":
				cfg.PII = true
			default:
				return nil, fmt.Errorf("unknown redaction rule %q", r)
			}
		}
	}

	return redact.New(cfg), nil
}

func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "Path to a session log file",
		},
		&cli.StringFlag{
			Name:  "session",
			Usage: "Session ID to look up under the session root",
		},
		&cli.StringFlag{
			Name:  "root",
			Usage: "Session root directory (default: ~/.claude/projects)",
		},
	}
}

func redactFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-redact",
			Usage: "Disable redaction of secrets and PII",
		},
		&cli.StringSliceFlag{
			Name:  "redact",
			Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
		},
	}
}
