package html

import (
	"bytes"
	"testing"
	"time"

	"github.com/sonnes/drishti/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSummary() *core.Summary {
	now := time.Date(2026, 1, 22, 9, 8, 6, 0, time.UTC)
	later := now.Add(30 * time.Minute)
	return &core.Summary{
		Path:      "/home/user/.claude/projects/-home-user-project/sess.jsonl",
		SessionID: "test-session-123",
		Version:   "2.1.0",
		Model:     "claude-opus-4-1",
		Title:     "Fix the authentication bug",
		CreatedAt: now,
		UpdatedAt: &later,
		Totals:    core.Usage{InputTokens: 5000, OutputTokens: 2000, CacheReadTokens: 120000},
		DiffStats: &core.DiffStats{Added: 12, Removed: 3},
		Exchanges: []core.Exchange{
			{
				Prompt:    "Fix the authentication bug",
				Response:  "I'll fix the bug in `auth.go`.",
				Timestamp: now,
				Usage:     core.Usage{InputTokens: 2000, OutputTokens: 800},
			},
			{
				Response:  "Done. The fix is in **Login**:\n\n```go\nfunc Login() error { return nil }\n```",
				Timestamp: later,
				Usage:     core.Usage{InputTokens: 3000, OutputTokens: 1200, CacheReadTokens: 120000},
			},
		},
	}
}

func TestRenderFullPage(t *testing.T) {
	s := buildTestSummary()
	r := New()
	var buf bytes.Buffer
	err := r.Render(&buf, s)
	require.NoError(t, err)

	html := buf.String()

	t.Run("page structure", func(t *testing.T) {
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<html lang=\"en\">")
		assert.Contains(t, html, "</html>")
	})

	t.Run("tailwind CDN", func(t *testing.T) {
		assert.Contains(t, html, "@tailwindcss/browser@4")
	})

	t.Run("inter font", func(t *testing.T) {
		assert.Contains(t, html, "fonts.googleapis.com")
		assert.Contains(t, html, "Inter")
	})

	t.Run("title", func(t *testing.T) {
		assert.Contains(t, html, "<title>Fix the authentication bug")
	})

	t.Run("header stats", func(t *testing.T) {
		assert.Contains(t, html, "claude-opus-4-1")
		assert.Contains(t, html, "5,000")
		assert.Contains(t, html, "2,000")
		assert.Contains(t, html, "125,000") // input + cache read
		assert.Contains(t, html, "+12")
		assert.Contains(t, html, "-3")
		assert.Contains(t, html, "30m 0s")
	})

	t.Run("prompt turn", func(t *testing.T) {
		assert.Contains(t, html, "Fix the authentication bug")
		assert.Contains(t, html, ">Prompt</span>")
	})

	t.Run("markdown response", func(t *testing.T) {
		assert.Contains(t, html, "<code>auth.go</code>")
		assert.Contains(t, html, "<strong>Login</strong>")
	})

	t.Run("highlighted code block", func(t *testing.T) {
		// chroma with inline styles emits style attributes on the pre block
		assert.Contains(t, html, "<pre")
		assert.Contains(t, html, "style=")
	})
}

func TestRenderPromptlessTurn(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s := &core.Summary{
		SessionID: "bg-session",
		CreatedAt: now,
		Exchanges: []core.Exchange{
			{Response: "Background refresh done.", Timestamp: now, Usage: core.Usage{InputTokens: 10, OutputTokens: 5}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, s))

	html := buf.String()
	assert.Contains(t, html, "No prompt")
	assert.Contains(t, html, "Background refresh done.")
	assert.Contains(t, html, "<title>Session bg-session")
}

func TestRenderUnreadable(t *testing.T) {
	s := &core.Summary{
		Path:      "/tmp/missing.jsonl",
		ReadError: "open /tmp/missing.jsonl: no such file or directory",
	}

	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, s))

	html := buf.String()
	assert.Contains(t, html, "temporarily unreadable")
	assert.Contains(t, html, "no such file or directory")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "<1s"},
		{12 * time.Second, "12s"},
		{95 * time.Second, "1m 35s"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
