package sidebar

import "sort"

// sortItems orders a sibling slice by position hint, ascending, recursing
// into category children first. Items without a hint keep their relative
// order among themselves and sort after items that have one. The sort is
// stable, which makes it idempotent: sorting an already-sorted tree changes
// nothing.
func sortItems(items []*item) {
	for _, it := range items {
		if it.isCategory {
			sortItems(it.children)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].position, items[j].position
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return *pi < *pj
	})
}

// exportItems converts construction nodes to their public form, dropping
// the position hints. The result is never nil.
func exportItems(items []*item) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		if it.isCategory {
			nodes = append(nodes, Category{
				Label:     it.label,
				Collapsed: it.collapsed,
				Items:     exportItems(it.children),
			})
		} else {
			nodes = append(nodes, DocItem{
				ID:    it.docID,
				Label: it.docLabel,
			})
		}
	}
	return nodes
}
