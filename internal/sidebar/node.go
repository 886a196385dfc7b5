package sidebar

import "encoding/json"

// Node is one entry in a generated sidebar tree: either a DocItem leaf or a
// Category holding children of its own. Ordering is fully resolved before
// nodes are returned, so no position hints appear on public nodes.
type Node interface {
	sidebarNode()
}

// DocItem is a leaf node referencing a single document by identifier.
type DocItem struct {
	// ID is the referenced document's identifier.
	ID string

	// Label overrides the document title in the sidebar. Empty means no
	// override.
	Label string
}

// Category is a grouping node corresponding to one directory below the
// generation target. Items holds the category's ordered children.
type Category struct {
	Label     string
	Collapsed bool
	Items     []Node
}

func (DocItem) sidebarNode()  {}
func (Category) sidebarNode() {}

// MarshalJSON encodes the leaf with a "type" tag so mixed node lists remain
// distinguishable after serialization.
func (d DocItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Label string `json:"label,omitempty"`
	}{Type: "doc", ID: d.ID, Label: d.Label})
}

// MarshalJSON encodes the category with a "type" tag. Items is always
// emitted as an array, never null.
func (c Category) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Node{}
	}
	return json.Marshal(struct {
		Type      string `json:"type"`
		Label     string `json:"label"`
		Collapsed bool   `json:"collapsed"`
		Items     []Node `json:"items"`
	}{Type: "category", Label: c.Label, Collapsed: c.Collapsed, Items: items})
}
