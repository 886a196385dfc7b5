// Package content loads Markdown documents from a content directory: it
// scans the tree, parses front matter, derives identifiers, titles and
// ordering hints, and hands the typed result to the sidebar generator and
// site builder.
package content

// Document is one Markdown source file with its parsed and derived
// metadata. The Body holds the Markdown source without the front matter
// block.
type Document struct {
	// ID uniquely identifies the document within the content directory.
	// Either the front matter id joined onto the document's directory, or
	// derived from the storage path with number prefixes stripped.
	ID string

	// Title resolves in order: front matter title, first level-1 heading,
	// filename with its number prefix stripped.
	Title string

	Description string

	// Slug is the site path the rendered page is served under. Defaults to
	// "/" plus the document ID.
	Slug string

	// Path is the storage path relative to the content root, slash
	// separated. Dir is its containing directory, "." at the root.
	Path string
	Dir  string

	// SidebarLabel overrides Title in navigation. Empty means no override.
	SidebarLabel string

	// SidebarPosition orders the document among its sidebar siblings:
	// front matter when set, otherwise the filename number prefix, nil
	// when neither exists.
	SidebarPosition *float64

	// Draft documents are loaded but excluded from builds.
	Draft bool

	Body []byte
}
