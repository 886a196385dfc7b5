package site

import (
	"bytes"
	"fmt"
	"html"
	"path"
	"path/filepath"
	"strings"

	"github.com/harrison/docsmith/internal/content"
	"github.com/harrison/docsmith/internal/display"
	"github.com/harrison/docsmith/internal/filelock"
)

// renderPages converts each document body to HTML and writes it below
// outputDir at the document's slug. Two documents resolving to the same
// output file is an error.
func (b *Builder) renderPages(docs []content.Document, outputDir string) error {
	var progress *display.ProgressIndicator
	if b.progress != nil {
		progress = display.NewProgressIndicator(b.progress, len(docs))
		progress.Start()
	}

	slugOwner := make(map[string]string, len(docs))
	for _, doc := range docs {
		rel := pagePath(doc.Slug)
		if earlier, ok := slugOwner[rel]; ok {
			return fmt.Errorf("slug collision: %s and %s both render to %s", earlier, doc.Path, rel)
		}
		slugOwner[rel] = doc.Path

		var body bytes.Buffer
		if err := b.markdown.Convert(doc.Body, &body); err != nil {
			return fmt.Errorf("failed to render %s: %w", doc.Path, err)
		}

		target := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := filelock.AtomicWrite(target, pageHTML(doc.Title, body.Bytes())); err != nil {
			return fmt.Errorf("failed to write page for %s: %w", doc.Path, err)
		}

		if progress != nil {
			progress.Step(doc.Path)
		}
	}

	if progress != nil {
		progress.Complete()
	}
	return nil
}

// pagePath converts a document slug to an output-relative page path. The
// slug is normalized against the output root, so "../" segments cannot
// escape it. An empty or "/" slug names the index page.
func pagePath(slug string) string {
	rel := strings.TrimPrefix(path.Clean("/"+slug), "/")
	if rel == "" {
		rel = "index"
	}
	return rel + ".html"
}

// pageHTML wraps rendered Markdown in a minimal standalone page.
func pageHTML(title string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
