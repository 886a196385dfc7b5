package content

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/docsmith/internal/sidebar"
)

// Logger receives progress output while loading. A nil Logger disables
// logging.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Loader reads and parses all documents below a content directory.
type Loader struct {
	contentDir string
	markdown   goldmark.Markdown
	log        Logger
}

// NewLoader creates a Loader for contentDir. log may be nil.
func NewLoader(contentDir string, log Logger) *Loader {
	return &Loader{
		contentDir: contentDir,
		markdown:   goldmark.New(),
		log:        log,
	}
}

// LoadAll scans the content directory and parses every document found,
// returning them in ascending storage-path order. Document IDs must be
// unique across the content directory; a collision fails the whole load.
func (l *Loader) LoadAll() ([]Document, error) {
	paths, err := ScanContentDir(l.contentDir)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(paths))
	pathByID := make(map[string]string, len(paths))

	for _, relPath := range paths {
		doc, err := l.loadDocument(relPath)
		if err != nil {
			return nil, err
		}

		if earlier, ok := pathByID[doc.ID]; ok {
			return nil, fmt.Errorf("duplicate document id %q in %s and %s", doc.ID, earlier, relPath)
		}
		pathByID[doc.ID] = relPath

		docs = append(docs, doc)
	}

	if l.log != nil {
		l.log.LogDebug(fmt.Sprintf("loaded %d documents from %s", len(docs), l.contentDir))
	}
	return docs, nil
}

// loadDocument reads and parses a single document by storage path.
func (l *Loader) loadDocument(relPath string) (Document, error) {
	data, err := os.ReadFile(filepath.Join(l.contentDir, filepath.FromSlash(relPath)))
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document %s: %w", relPath, err)
	}

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		return Document{}, &FrontMatterError{Path: relPath, Err: err}
	}

	base := strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
	name, prefix := sidebar.ExtractNumberPrefix(base)

	doc := Document{
		Description:  fm.Description,
		Path:         relPath,
		Dir:          path.Dir(relPath),
		SidebarLabel: fm.SidebarLabel,
		Draft:        fm.Draft,
		Body:         body,
	}

	// The front matter id replaces only the filename part; the directory
	// part of the ID always comes from the storage path, prefixes stripped.
	baseID := fm.ID
	if baseID == "" {
		baseID = name
	}
	if idDir := stripPathPrefixes(doc.Dir); idDir == "." {
		doc.ID = baseID
	} else {
		doc.ID = idDir + "/" + baseID
	}

	doc.Title = fm.Title
	if doc.Title == "" {
		doc.Title = l.firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = name
	}

	doc.SidebarPosition = fm.SidebarPosition
	if doc.SidebarPosition == nil {
		doc.SidebarPosition = prefix
	}

	doc.Slug = fm.Slug
	if doc.Slug == "" {
		doc.Slug = "/" + doc.ID
	}

	return doc, nil
}

// firstHeading returns the plain text of the first level-1 heading in body,
// or "" when the document has none.
func (l *Loader) firstHeading(body []byte) string {
	doc := l.markdown.Parser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			title = extractText(heading, body)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// extractText extracts plain text from an AST node
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if text, ok := c.(*ast.Text); ok {
			buf.Write(text.Segment.Value(source))
		}
	}
	return buf.String()
}

// stripPathPrefixes strips number prefixes from every segment of a slash
// path, so "02-guides/01-install" becomes "guides/install".
func stripPathPrefixes(p string) string {
	if p == "." || p == "" {
		return p
	}
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		name, _ := sidebar.ExtractNumberPrefix(seg)
		segments[i] = name
	}
	return strings.Join(segments, "/")
}
