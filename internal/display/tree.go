package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/harrison/docsmith/internal/sidebar"
)

// PrintSidebar renders a generated sidebar as an indented tree. Category
// labels carry a collapse marker and print in blue when the writer is a
// terminal; pipes and files get plain text. Document leaves print their
// identifier.
func PrintSidebar(w io.Writer, name string, nodes []sidebar.Node) {
	fmt.Fprintf(w, "%s\n", name)
	printNodes(w, nodes, 1, colorEnabled(w))
}

// colorEnabled reports whether w is a terminal that should receive ANSI
// color codes.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func printNodes(w io.Writer, nodes []sidebar.Node, depth int, colored bool) {
	indent := strings.Repeat("  ", depth)

	for _, node := range nodes {
		switch n := node.(type) {
		case sidebar.Category:
			marker := "▸"
			if !n.Collapsed {
				marker = "▾"
			}
			if colored {
				fmt.Fprintf(w, "%s\x1b[34m%s %s\x1b[0m\n", indent, marker, n.Label)
			} else {
				fmt.Fprintf(w, "%s%s %s\n", indent, marker, n.Label)
			}
			printNodes(w, n.Items, depth+1, colored)
		case sidebar.DocItem:
			if n.Label != "" {
				fmt.Fprintf(w, "%s%s (%s)\n", indent, n.Label, n.ID)
			} else {
				fmt.Fprintf(w, "%s%s\n", indent, n.ID)
			}
		}
	}
}
