// Package json renders summaries as JSON (serializes the summary model as-is).
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/drishti/core"
)

// Renderer renders a summary to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the summary as a single JSON document to w.
func (r *Renderer) Render(w io.Writer, s *core.Summary) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}
