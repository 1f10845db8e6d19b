package core

import (
	"fmt"
	"strings"
	"time"
)

// DiffStats summarizes file-level edit statistics across a session.
type DiffStats struct {
	Added   int `json:"added,omitempty"`   // lines added (Write content + Edit new_string)
	Removed int `json:"removed,omitempty"` // lines removed (Edit old_string)
	Changed int `json:"changed,omitempty"` // unique files touched
}

// DiffTracker accumulates edit statistics while the reducer scans tool
// inputs. The reducer discards tool content after scanning, so stats must be
// collected inline rather than recomputed from the summary.
type DiffTracker struct {
	files   map[string]bool
	added   int
	removed int
}

// NewDiffTracker creates an empty tracker.
func NewDiffTracker() *DiffTracker {
	return &DiffTracker{files: make(map[string]bool)}
}

// RecordWrite accounts for a whole-file write.
func (d *DiffTracker) RecordWrite(path, content string) {
	if path != "" {
		d.files[path] = true
	}
	d.added += countLines(content)
}

// RecordEdit accounts for a string-replacement edit.
func (d *DiffTracker) RecordEdit(path, oldString, newString string) {
	if path != "" {
		d.files[path] = true
	}
	d.removed += countLines(oldString)
	d.added += countLines(newString)
}

// Stats returns the accumulated statistics, or nil if nothing was recorded.
func (d *DiffTracker) Stats() *DiffStats {
	if d.added == 0 && d.removed == 0 && len(d.files) == 0 {
		return nil
	}
	return &DiffStats{
		Added:   d.added,
		Removed: d.removed,
		Changed: len(d.files),
	}
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}

// RelativeTime formats a time.Time as a human-readable relative string.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
