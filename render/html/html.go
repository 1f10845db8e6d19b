// Package html renders session summaries as standalone HTML pages styled
// with Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sonnes/drishti/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders a summary to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax
// highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // allow raw HTML in markdown
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Summary         *core.Summary
	Turns           []turnData
	OverallDuration string
}

// turnData is the per-turn template data.
type turnData struct {
	Turn     core.Turn
	Totals   core.Usage
	Response template.HTML // final answer rendered as markdown
	Calls    int
}

// Render writes the summary as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, s *core.Summary) error {
	var turns []turnData
	for _, turn := range core.GroupTurns(s.Exchanges) {
		td := turnData{
			Turn:   turn,
			Totals: turn.Totals(),
			Calls:  len(turn.Exchanges),
		}
		if resp := turn.Response(); resp != "" {
			var buf bytes.Buffer
			if err := r.md.Convert([]byte(resp), &buf); err != nil {
				return fmt.Errorf("goldmark convert: %w", err)
			}
			td.Response = template.HTML(buf.String())
		}
		turns = append(turns, td)
	}

	var overallDuration string
	if s.UpdatedAt != nil && !s.CreatedAt.IsZero() {
		overallDuration = formatDuration(s.UpdatedAt.Sub(s.CreatedAt))
	}

	data := pageData{
		Summary:         s,
		Turns:           turns,
		OverallDuration: overallDuration,
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatNumber": formatNumber,
		"formatTime":   formatTime,
		"relativeTime": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return core.RelativeTime(*t)
		},
		"totalContext": func(u core.Usage) int { return u.TotalContext() },
	}
}

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
