package sidebar

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Logger receives progress and warning output during generation. A nil
// Logger disables logging. *logger.ConsoleLogger satisfies the interface.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Generator builds sidebar trees for directory slices below a content root.
// A Generator holds no state between calls and is safe for concurrent use;
// all construction state lives in a per-call builder.
type Generator struct {
	contentDir       string
	defaultCollapsed bool
	log              Logger
}

// NewGenerator creates a Generator rooted at contentDir, the filesystem
// directory holding the documentation sources. defaultCollapsed applies to
// categories whose metadata does not set a collapsed flag. log may be nil.
func NewGenerator(contentDir string, defaultCollapsed bool, log Logger) *Generator {
	return &Generator{
		contentDir:       contentDir,
		defaultCollapsed: defaultCollapsed,
		log:              log,
	}
}

// Generate derives the sidebar tree for targetDir, a slash path relative to
// the content root ("." for the root itself). Documents outside targetDir
// are ignored. The returned nodes are fully ordered with no position hints
// attached. Zero documents under targetDir is not an error: Generate logs a
// warning and returns an empty, non-nil slice. On error no partial tree is
// returned.
func (g *Generator) Generate(docs []Document, targetDir string) ([]Node, error) {
	if targetDir == "" {
		targetDir = "."
	}
	targetDir = path.Clean(targetDir)

	scoped := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if underTarget(doc.Dir, targetDir) {
			scoped = append(scoped, doc)
		}
	}

	// Storage-path order decides both the tie-break order of unpositioned
	// siblings and the first-creation order of shared ancestor categories.
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].Path < scoped[j].Path
	})

	if len(scoped) == 0 {
		g.warnf("no documents found under %q, generated an empty sidebar", targetDir)
		return []Node{}, nil
	}
	g.debugf("generating sidebar for %q from %d documents", targetDir, len(scoped))

	b := &builder{
		gen:        g,
		targetDir:  targetDir,
		categories: make(map[string]*item),
	}

	// Strictly one document at a time: processing order is part of the
	// output contract, so this loop must never be parallelized.
	for _, doc := range scoped {
		if err := b.attachDocument(doc); err != nil {
			return nil, err
		}
	}

	sortItems(b.top)
	return exportItems(b.top), nil
}

// underTarget reports whether dir, a slash path relative to the content
// root, lies inside targetDir (including targetDir itself).
func underTarget(dir, targetDir string) bool {
	if targetDir == "." {
		return true
	}
	return dir == targetDir || strings.HasPrefix(dir, targetDir+"/")
}

// item is a tree node under construction. Position hints live only here;
// exportItems strips them when converting to public nodes.
type item struct {
	position *float64

	// Leaf fields.
	docID    string
	docLabel string

	// Category fields.
	isCategory bool
	label      string
	collapsed  bool
	children   []*item
}

// builder carries the mutable state of one generation call: the top-level
// node sequence and the breadcrumb-to-category cache that keeps category
// nodes unique per breadcrumb.
type builder struct {
	gen        *Generator
	targetDir  string
	top        []*item
	categories map[string]*item
}

// attachDocument resolves the document's category chain and appends a leaf
// node for it, either under its category or at the top level for documents
// sitting directly in the target directory.
func (b *builder) attachDocument(doc Document) error {
	rel, err := relativeDir(doc.Dir, b.targetDir)
	if err != nil {
		return err
	}

	parent, err := b.resolveCategory(breadcrumbOf(rel))
	if err != nil {
		return err
	}

	leaf := &item{
		docID:    doc.ID,
		docLabel: doc.Label,
		position: doc.Position,
	}
	if parent != nil {
		parent.children = append(parent.children, leaf)
	} else {
		b.top = append(b.top, leaf)
	}
	return nil
}

// resolveCategory returns the category node for breadcrumb, creating it and
// any missing ancestors on the way down. An empty breadcrumb resolves to
// nil, meaning the top level. Repeated calls with the same breadcrumb return
// the same node instance, which is what lets documents sharing a directory
// share one category.
func (b *builder) resolveCategory(breadcrumb []string) (*item, error) {
	if len(breadcrumb) == 0 {
		return nil, nil
	}

	// Ancestors are resolved before the node itself is looked up or
	// created, so first-creation order always follows breadcrumb order.
	parents, tail := splitBreadcrumb(breadcrumb)
	parent, err := b.resolveCategory(parents)
	if err != nil {
		return nil, err
	}

	key := breadcrumbKey(breadcrumb)
	if cat, ok := b.categories[key]; ok {
		return cat, nil
	}

	meta, err := LoadCategoryMetadata(b.categoryDir(breadcrumb))
	if err != nil {
		return nil, err
	}

	name, prefix := ExtractNumberPrefix(tail)
	cat := &item{
		isCategory: true,
		label:      name,
		collapsed:  b.gen.defaultCollapsed,
		position:   prefix,
	}
	if meta != nil {
		if meta.Label != nil {
			cat.label = *meta.Label
		}
		if meta.Position != nil {
			cat.position = meta.Position
		}
		if meta.Collapsed != nil {
			cat.collapsed = *meta.Collapsed
		}
	}

	if parent != nil {
		parent.children = append(parent.children, cat)
	} else {
		b.top = append(b.top, cat)
	}
	b.categories[key] = cat
	return cat, nil
}

// categoryDir composes the filesystem directory a breadcrumb corresponds
// to, for metadata lookups.
func (b *builder) categoryDir(breadcrumb []string) string {
	rel := path.Join(b.targetDir, path.Join(breadcrumb...))
	return filepath.Join(b.gen.contentDir, filepath.FromSlash(rel))
}

func (g *Generator) debugf(format string, args ...interface{}) {
	if g.log != nil {
		g.log.LogDebug(fmt.Sprintf(format, args...))
	}
}

func (g *Generator) warnf(format string, args ...interface{}) {
	if g.log != nil {
		g.log.LogWarn(fmt.Sprintf(format, args...))
	}
}
