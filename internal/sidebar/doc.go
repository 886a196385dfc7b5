// Package sidebar derives hierarchical navigation trees from flat document
// collections.
//
// Authors drop Markdown files into a directory tree and the sidebar builds
// itself: directories become categories, documents become leaf entries, and
// ordering comes from explicit position hints with sensible fallbacks. No
// per-document configuration is required.
//
// # How a tree is built
//
// The generator receives a list of documents (already scanned and parsed by
// the caller) together with a target directory that scopes the slice being
// generated. Documents outside the target directory are ignored. The rest
// are sorted by storage path and processed one at a time, in order:
//
//  1. The document's directory is converted into a breadcrumb, the ordered
//     list of path segments below the target directory.
//  2. Category nodes are resolved along the breadcrumb, parents first. Each
//     distinct breadcrumb maps to exactly one category node per generation,
//     so documents sharing a directory share a category instance.
//  3. A leaf node for the document is appended to its category's children
//     (or to the top level for documents sitting directly in the target
//     directory).
//
// A final recursive sort pass orders every level by position hint and strips
// the hints from the public result.
//
// # Ordering
//
// Three sources decide a node's position, in decreasing precedence:
//
//   - an explicit position in front matter (documents) or a _category_
//     metadata file (categories)
//   - a numeric filename prefix such as "03-setup" (parsed by
//     ExtractNumberPrefix)
//   - arrival order, i.e. ascending storage path
//
// Nodes without any position sort after nodes that have one and keep their
// relative order among themselves. Sorting is stable and idempotent.
//
// # Category metadata
//
// A directory may carry a _category_.json, _category_.yml or _category_.yaml
// file declaring a label, a position and a collapsed flag, all optional.
// When several variants coexist the JSON file wins, then .yml, then .yaml;
// the files are never merged. A metadata file that exists but fails
// validation aborts the whole generation with a MetadataError.
//
// Documents are processed strictly sequentially. Parallelizing the loop
// would make the first-creation order of shared ancestor categories, and
// with it the output order of unpositioned siblings, nondeterministic.
package sidebar
