// Package display provides terminal UI utilities for build progress, warnings,
// and sidebar rendering.
//
// This package centralizes all terminal output formatting and ANSI color codes
// for the docsmith CLI. It provides three main categories of functionality:
//
// # Progress Indicators
//
// Use ProgressIndicator while rendering pages:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(docs))
//	progress.Start()
//	for _, doc := range docs {
//	    progress.Step(doc.Path)
//	    // ... render page ...
//	}
//	progress.Complete()
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Mixed ordering in guides/",
//	    Message:    "Some documents carry a number prefix and some don't",
//	    Files:      []string{"overview.md"},
//	    Suggestion: "Prefix every document or none",
//	}
//	warning.Display(os.Stderr)
//
// Or use the convenience factory after a prefix scan:
//
//	unprefixed, _ := display.FindUnprefixedSiblings(dir)
//	if len(unprefixed) > 0 {
//	    warning := display.WarnUnprefixedSiblings(dir, unprefixed)
//	    warning.Display(os.Stdout)
//	}
//
// # Sidebar Trees
//
// PrintSidebar renders a generated sidebar as an indented tree. Category
// labels are colored when the writer is a terminal:
//
//	display.PrintSidebar(os.Stdout, "docs", nodes)
//
// # ANSI Colors
//
// The package uses ANSI escape codes for terminal colors:
//   - Cyan (\x1b[36m) for progress steps
//   - Green (\x1b[32m) for success messages
//   - Yellow (\x1b[33m) for warnings
//   - Blue (\x1b[34m) for category labels
//   - Reset (\x1b[0m) after each colored section
//
// All functions accept io.Writer interfaces for testability.
package display
