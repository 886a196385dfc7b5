package display

import (
	"fmt"
	"io"
)

// ProgressIndicator manages multi-step progress display with ANSI colors
type ProgressIndicator struct {
	writer    io.Writer
	totalDocs int
	current   int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:    w,
		totalDocs: total,
		current:   0,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Rendering pages:\n")
}

// Step displays progress for the current document: [N/Total] path (cyan)
func (p *ProgressIndicator) Step(relPath string) {
	p.current++
	// Cyan around the whole line for visibility
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.totalDocs, relPath)
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Rendered %d pages\n", p.current)
}
