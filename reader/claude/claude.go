// Package claude derives session summaries from Claude Code session logs
// (JSONL in ~/.claude/projects/).
package claude

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sonnes/drishti/core"
)

// Reader derives summaries from Claude Code JSONL session files.
type Reader struct{}

// maxLineSize is the maximum JSONL line size (1 MB). Claude Code tool results
// can exceed the default 64 KB bufio.Scanner buffer.
const maxLineSize = 1 << 20

// Raw JSON deserialization types. These mirror the JSONL structure on disk.

type rawEntry struct {
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	SessionID        string          `json:"sessionId"`
	Version          string          `json:"version"`
	Timestamp        string          `json:"timestamp"`
	IsSidechain      bool            `json:"isSidechain"`
	IsMeta           bool            `json:"isMeta"`
	IsCompactSummary bool            `json:"isCompactSummary"`
	Message          rawMessage      `json:"message"`
	CompactMetadata  *rawCompactMeta `json:"compactMetadata"`
}

type rawMessage struct {
	Role  string `json:"role"`
	Model string `json:"model"`
	// Content is a plain string for typed user input, or an array of
	// content blocks for everything else.
	Content json.RawMessage `json:"content"`
	Usage   *rawUsage       `json:"usage"`
}

type rawUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

type rawCompactMeta struct {
	Trigger   string `json:"trigger"`
	PreTokens int    `json:"preTokens"`
}

type rawContentBlock struct {
	Type      string         `json:"type"`
	Text      string         `json:"text"`
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id"`
}

// ReadFile derives a summary from the log file's current content. A file
// that cannot be opened or scanned yields a summary with ReadError set
// rather than an error — downstream consumers render "temporarily
// unreadable" instead of crashing.
func (r *Reader) ReadFile(path string) *core.Summary {
	s := &core.Summary{Path: path}

	f, err := os.Open(path)
	if err != nil {
		s.ReadError = err.Error()
		return s
	}
	defer f.Close()

	reduce(f, s)
	return s
}

// reduce scans JSONL lines in document order and folds them into s. A single
// pending-prompt slot carries the latest human prompt until the next
// usage-bearing assistant record consumes it. Reducing the same content twice
// yields structurally identical summaries.
func reduce(rd io.Reader, s *core.Summary) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	diffs := core.NewDiffTracker()
	var pendingPrompt string
	var pendingCompact bool

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		entry, ok := decodeLine(line)
		if !ok || entry.IsSidechain {
			continue
		}

		// Session metadata is first-write-wins.
		if s.SessionID == "" {
			s.SessionID = entry.SessionID
		}
		if s.Version == "" {
			s.Version = entry.Version
		}
		recordTimestamp(s, entry.Timestamp)

		switch entry.Type {
		case "system":
			if entry.Subtype != "compact_boundary" {
				continue
			}
			s.Compactions++
			if entry.CompactMetadata != nil && entry.CompactMetadata.PreTokens > 0 {
				s.PreCompactTokens = entry.CompactMetadata.PreTokens
			}

		case "user":
			if entry.IsCompactSummary {
				// Machine-written summary of compacted context. Not a
				// prompt, but the next exchange is attributed to it.
				pendingCompact = true
				continue
			}
			if prompt, ok := promptText(entry); ok {
				// Overwrites any unconsumed prompt: at most one prompt
				// can precede the next assistant output.
				pendingPrompt = prompt
			}

		case "assistant":
			if entry.Message.Usage == nil {
				continue
			}
			if s.Model == "" {
				s.Model = entry.Message.Model
			}
			ex := core.Exchange{
				Prompt:         pendingPrompt,
				Response:       responseText(entry.Message.Content, diffs),
				Model:          entry.Message.Model,
				Timestamp:      parseTime(entry.Timestamp),
				FromCompaction: pendingCompact || entry.IsCompactSummary,
				Usage:          mapUsage(entry.Message.Usage),
			}
			s.Exchanges = append(s.Exchanges, ex)
			s.Totals.Add(ex.Usage)
			pendingPrompt = ""
			pendingCompact = false
		}
	}

	if err := scanner.Err(); err != nil {
		s.ReadError = err.Error()
	}
	s.DiffStats = diffs.Stats()
	s.Title = deriveTitle(s.Exchanges)
}

// decodeLine decodes one JSONL line. Malformed lines report ok=false and are
// skipped by the caller; they never abort the scan.
func decodeLine(line []byte) (rawEntry, bool) {
	var entry rawEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return rawEntry{}, false
	}
	return entry, true
}

// promptText extracts human prompt text from a user entry. Reports ok=false
// for records that must not become prompts: meta records, tool-result-only
// follow-ups, slash-command wrappers, and text that is empty once
// system-injected markup is stripped.
func promptText(entry rawEntry) (string, bool) {
	if entry.IsMeta {
		return "", false
	}
	text, ok := userText(entry.Message.Content)
	if !ok {
		return "", false
	}
	if core.IsCommandText(text) {
		return "", false
	}
	text = core.CleanPromptText(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// userText extracts text from user message content, which is either a plain
// string or an array of content blocks. Reports ok=false when every block is
// a tool_result — those are machine-originated follow-ups, not new human
// input, and grouping them as prompts would fragment one human turn into
// several.
func userText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var blocks []rawContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return "", false
	}
	if len(blocks) == 0 {
		return "", false
	}

	toolResultOnly := true
	var parts []string
	for _, b := range blocks {
		if b.Type != "tool_result" {
			toolResultOnly = false
		}
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	if toolResultOnly {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

// responseText concatenates all text blocks of an assistant message in
// document order. Non-text blocks are excluded from the response; tool_use
// blocks are scanned for edit statistics before being dropped.
func responseText(raw json.RawMessage, diffs *core.DiffTracker) string {
	var blocks []rawContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case "text":
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case "tool_use":
			recordToolUse(diffs, b)
		}
	}
	return strings.Join(parts, "\n")
}

func recordToolUse(diffs *core.DiffTracker, b rawContentBlock) {
	m := b.Input
	if m == nil {
		return
	}
	switch strings.ToLower(b.Name) {
	case "write":
		diffs.RecordWrite(stringField(m, "file_path"), stringField(m, "content"))
	case "edit":
		diffs.RecordEdit(stringField(m, "file_path"), stringField(m, "old_string"), stringField(m, "new_string"))
	}
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func mapUsage(raw *rawUsage) core.Usage {
	return core.Usage{
		InputTokens:         clampNonNegative(raw.InputTokens),
		OutputTokens:        clampNonNegative(raw.OutputTokens),
		CacheReadTokens:     clampNonNegative(raw.CacheReadInputTokens),
		CacheCreationTokens: clampNonNegative(raw.CacheCreationInputTokens),
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// recordTimestamp tracks the first and last parsable timestamps seen.
func recordTimestamp(s *core.Summary, raw string) {
	if raw == "" {
		return
	}
	t := parseTime(raw)
	if t.IsZero() {
		return
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = t
		return
	}
	if t.After(s.CreatedAt) {
		updated := t
		s.UpdatedAt = &updated
	}
}

// deriveTitle uses the first prompt as the session title, truncated to 80
// characters on a word boundary.
func deriveTitle(exchanges []core.Exchange) string {
	for _, ex := range exchanges {
		if ex.HasPrompt() {
			return truncate(ex.Prompt, 80)
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if i := strings.LastIndex(s[:maxLen], " "); i > 0 {
		return s[:i] + "..."
	}
	return s[:maxLen] + "..."
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
