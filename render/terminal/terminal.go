// Package terminal renders session summaries as ANSI-colored turn cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/sonnes/drishti/core"
)

const defaultWidth = 100

// Renderer pretty-prints a summary as turn cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the summary as ANSI-colored turn cards to w.
func (r *Renderer) Render(w io.Writer, s *core.Summary) error {
	width := r.termWidth()

	writeHeader(w, s)

	if s.Unreadable() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+styleNotice.Render("temporarily unreadable")+"  "+styleMeta.Render(s.ReadError))
		fmt.Fprintln(w)
		return nil
	}

	var prevTimestamp time.Time
	for _, turn := range core.GroupTurns(s.Exchanges) {
		writeTurn(w, turn, prevTimestamp, width)
		if last := turn.Exchanges[len(turn.Exchanges)-1]; !last.Timestamp.IsZero() {
			prevTimestamp = last.Timestamp
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the session metadata block.
func writeHeader(w io.Writer, s *core.Summary) {
	// Row 1: Title + diff stats
	title := s.Title
	if title == "" && s.SessionID != "" {
		title = "Session " + s.SessionID
	}
	if title == "" {
		title = s.Path
	}
	row1 := styleTitle.Render(title)
	if s.DiffStats != nil {
		var stats []string
		if s.DiffStats.Added > 0 {
			stats = append(stats, styleAdded.Render("+"+formatNumber(s.DiffStats.Added)))
		}
		if s.DiffStats.Changed > 0 {
			stats = append(stats, styleChanged.Render("~"+formatNumber(s.DiffStats.Changed)))
		}
		if s.DiffStats.Removed > 0 {
			stats = append(stats, styleRemoved.Render("-"+formatNumber(s.DiffStats.Removed)))
		}
		if len(stats) > 0 {
			row1 += "  " + strings.Join(stats, " ")
		}
	}
	fmt.Fprintln(w, row1)

	// Row 2: relative_time  model  exchanges  compactions
	var parts []string
	if !s.CreatedAt.IsZero() {
		parts = append(parts, core.RelativeTime(s.CreatedAt))
	}
	if s.Model != "" {
		parts = append(parts, s.Model)
	}
	if n := len(s.Exchanges); n > 0 {
		parts = append(parts, fmt.Sprintf("%d exchanges", n))
	}
	if s.Compactions > 0 {
		c := fmt.Sprintf("%d compactions", s.Compactions)
		if s.PreCompactTokens > 0 {
			c += fmt.Sprintf(" (last at %s tokens)", formatNumber(s.PreCompactTokens))
		}
		parts = append(parts, c)
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
	}

	if !s.Totals.IsZero() {
		fmt.Fprintln(w)
		writeUsage(w, s.Totals)
	}
}

// writeUsage renders token counters in two rows: values then labels.
func writeUsage(w io.Writer, u core.Usage) {
	type stat struct {
		value int
		label string
	}
	stats := []stat{
		{u.InputTokens, "INPUT"},
		{u.OutputTokens, "OUTPUT"},
	}
	if u.CacheReadTokens > 0 {
		stats = append(stats, stat{u.CacheReadTokens, "CACHE READ"})
	}
	if u.CacheCreationTokens > 0 {
		stats = append(stats, stat{u.CacheCreationTokens, "CACHE WRITE"})
	}
	stats = append(stats, stat{u.TotalContext(), "CONTEXT"})

	var values, labels []string
	for _, s := range stats {
		formatted := formatNumber(s.value)
		colWidth := max(len(formatted), len(s.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, formatted))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, s.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeTurn renders one turn card: prompt, response, usage line.
func writeTurn(w io.Writer, turn core.Turn, prev time.Time, width int) {
	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	writeSeparator(w, width)
	fmt.Fprintln(w)

	first := turn.Exchanges[0]
	var metaParts []string
	if !first.Timestamp.IsZero() {
		metaParts = append(metaParts, formatTime(first.Timestamp))
		if !prev.IsZero() {
			metaParts = append(metaParts, formatDuration(first.Timestamp.Sub(prev)))
		}
	}
	if len(turn.Exchanges) > 1 {
		metaParts = append(metaParts, fmt.Sprintf("%d calls", len(turn.Exchanges)))
	}
	if first.FromCompaction {
		metaParts = append(metaParts, "after compaction")
	}

	badge := stylePromptBadge.Render("PROMPT")
	prompt := turn.Prompt
	if prompt == "" {
		badge = styleMeta.Render("NO PROMPT")
	}
	header := " " + badge
	if len(metaParts) > 0 {
		header += "    " + styleMeta.Render(strings.Join(metaParts, "    "))
	}
	fmt.Fprintln(w, header)
	if prompt != "" {
		fmt.Fprintln(w, "  "+truncate(prompt, contentWidth))
	}

	if resp := turn.Response(); resp != "" {
		fmt.Fprintln(w, " "+styleResponseBadge.Render("RESPONSE"))
		fmt.Fprintln(w, "  "+truncate(resp, contentWidth))
	}

	totals := turn.Totals()
	usage := fmt.Sprintf("in %s  out %s  ctx %s",
		formatNumber(totals.InputTokens),
		formatNumber(totals.OutputTokens),
		formatNumber(totals.TotalContext()))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(usage))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
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
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
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
