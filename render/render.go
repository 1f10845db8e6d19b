// Package render defines the interface for rendering session summaries into
// various output formats.
package render

import (
	"io"

	"github.com/sonnes/drishti/core"
)

// Renderer writes a summary to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, s *core.Summary) error
}
