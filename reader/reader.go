// Package reader defines the interface for deriving session summaries from
// agent log files.
package reader

import "github.com/sonnes/drishti/core"

// Reader derives session summaries from log files. ReadFile is the
// on-demand query path; the broadcaster calls it on every detected change.
type Reader interface {
	// ReadFile derives a summary from the log file's current content. It
	// never fails: an unreadable file yields a summary with its ReadError
	// marker set.
	ReadFile(path string) *core.Summary
}
