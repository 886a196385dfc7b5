package sidebar

// Document is one input document for sidebar generation. Documents are
// produced by the content loader and treated as read-only here; the
// generator never mutates them.
type Document struct {
	// ID uniquely identifies the document within one generation call.
	ID string

	// Path is the document's storage path relative to the content root,
	// slash-separated (e.g. "guides/01-setup.md"). It determines processing
	// order and therefore the tie-break order of unpositioned siblings.
	Path string

	// Dir is the document's containing directory relative to the content
	// root, slash-separated, "." for documents at the root itself.
	Dir string

	// Label overrides the sidebar label for the document's leaf entry.
	// Empty means no override; renderers fall back to the document title.
	Label string

	// Position is an explicit ordering hint from front matter, nil when the
	// author did not set one.
	Position *float64
}
