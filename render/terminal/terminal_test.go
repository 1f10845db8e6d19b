package terminal

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/drishti/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToString(t *testing.T, s *core.Summary) string {
	t.Helper()
	r := &Renderer{Width: 100}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s))
	return ansi.Strip(buf.String())
}

func TestRenderHeader(t *testing.T) {
	now := time.Now()
	s := &core.Summary{
		Path:      "/tmp/abc-123.jsonl",
		SessionID: "abc-123",
		Model:     "claude-opus-4-20250514",
		CreatedAt: now,
		Exchanges: []core.Exchange{
			{Prompt: "review the parser", Response: "Reviewed.", Timestamp: now},
		},
		Totals: core.Usage{
			InputTokens:         229,
			OutputTokens:        1273,
			CacheReadTokens:     1228873,
			CacheCreationTokens: 202896,
		},
		Compactions:      2,
		PreCompactTokens: 165000,
		DiffStats:        &core.DiffStats{Added: 10, Removed: 3, Changed: 2},
	}

	out := renderToString(t, s)

	assert.Contains(t, out, "review the parser")
	assert.Contains(t, out, "claude-opus-4-20250514")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "2 compactions")
	assert.Contains(t, out, "165,000")
	assert.Contains(t, out, "1,228,873")
	assert.Contains(t, out, "202,896")
	assert.Contains(t, out, "INPUT")
	assert.Contains(t, out, "CACHE READ")
	assert.Contains(t, out, "CONTEXT")
	assert.Contains(t, out, "1,431,998") // 229 + 1,228,873 + 202,896
	assert.Contains(t, out, "+10")
	assert.Contains(t, out, "-3")
	assert.Contains(t, out, "~2")
}

func TestRenderTurns(t *testing.T) {
	now := time.Now()
	s := &core.Summary{
		SessionID: "turns-1",
		Exchanges: []core.Exchange{
			{Prompt: "fix bug", Response: "Looking.", Timestamp: now, Usage: core.Usage{InputTokens: 100}},
			{Response: "Done.", Timestamp: now.Add(10 * time.Second), Usage: core.Usage{InputTokens: 150}},
			{Prompt: "now add tests", Response: "Added.", Timestamp: now.Add(40 * time.Second), Usage: core.Usage{InputTokens: 200}},
		},
	}

	out := renderToString(t, s)

	assert.Contains(t, out, "fix bug")
	assert.Contains(t, out, "2 calls")
	assert.Contains(t, out, "Done.") // final answer of the multi-call turn
	assert.Contains(t, out, "now add tests")
	assert.Contains(t, out, "in 250") // per-turn totals
}

func TestRenderPromptlessTurn(t *testing.T) {
	s := &core.Summary{
		SessionID: "np-1",
		Exchanges: []core.Exchange{
			{Response: "resumed", Usage: core.Usage{InputTokens: 10}},
		},
	}

	out := renderToString(t, s)
	assert.Contains(t, out, "NO PROMPT")
	assert.Contains(t, out, "resumed")
}

func TestRenderUnreadable(t *testing.T) {
	s := &core.Summary{
		Path:      "/tmp/gone.jsonl",
		ReadError: "open /tmp/gone.jsonl: permission denied",
	}

	out := renderToString(t, s)
	assert.Contains(t, out, "temporarily unreadable")
	assert.Contains(t, out, "permission denied")
}
