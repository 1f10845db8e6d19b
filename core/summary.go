// Package core defines the session summary model — the normalized
// representation of a live agent session log that the reducer produces and
// the broadcaster, renderers, and server all consume.
package core

import "time"

// Summary is the derived state of one session log at a point in time. A
// fresh Summary is built on every re-derivation; instances are never mutated
// after the reducer returns them.
type Summary struct {
	// Path is the absolute path of the log file this summary was derived
	// from. It is the identity observers subscribe to.
	Path             string     `json:"path"`
	SessionID        string     `json:"session_id,omitempty"`
	Version          string     `json:"version,omitempty"` // schema version from the log
	Model            string     `json:"model,omitempty"`   // primary model used
	Title            string     `json:"title,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	Exchanges        []Exchange `json:"exchanges"`
	Totals           Usage      `json:"totals"`
	Compactions      int        `json:"compactions,omitempty"`
	PreCompactTokens int        `json:"pre_compact_tokens,omitempty"` // context size before the last compaction
	DiffStats        *DiffStats `json:"diff_stats,omitempty"`

	// ReadError is set when the log file could not be read at derivation
	// time. A summary with ReadError represents "temporarily unreadable",
	// not "no data yet".
	ReadError string `json:"read_error,omitempty"`
}

// Unreadable reports whether this summary is an error marker produced
// because the log file could not be read.
func (s *Summary) Unreadable() bool {
	return s.ReadError != ""
}

// Exchange is one assistant response with its token usage and the human
// prompt that triggered it, if any. Exchanges are immutable once appended to
// a Summary.
type Exchange struct {
	// Prompt is the preceding human prompt text. Empty when the response
	// was produced without a new human prompt in the window.
	Prompt         string    `json:"prompt,omitempty"`
	Response       string    `json:"response,omitempty"`
	Model          string    `json:"model,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	FromCompaction bool      `json:"from_compaction,omitempty"` // triggered by a compaction summary
	Usage          Usage     `json:"usage"`
}

// HasPrompt reports whether this exchange was triggered by a human prompt.
func (e Exchange) HasPrompt() bool {
	return e.Prompt != ""
}

// Usage holds token counters. Used both at session level (cumulative) and
// per individual exchange.
type Usage struct {
	InputTokens         int `json:"input_tokens,omitempty"`
	OutputTokens        int `json:"output_tokens,omitempty"`
	CacheReadTokens     int `json:"cache_read_tokens,omitempty"`
	CacheCreationTokens int `json:"cache_creation_tokens,omitempty"`
}

// Add accumulates the counts from other into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheReadTokens += other.CacheReadTokens
	u.CacheCreationTokens += other.CacheCreationTokens
}

// TotalContext is the context size represented by this usage: input plus
// both cache counters. Always derived, never stored.
func (u Usage) TotalContext() int {
	return u.InputTokens + u.CacheReadTokens + u.CacheCreationTokens
}

// IsZero reports whether all four counters are zero.
func (u Usage) IsZero() bool {
	return u == Usage{}
}
