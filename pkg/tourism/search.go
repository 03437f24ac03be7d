package tourism

import "strings"

// Filter keeps the items that match both query and category, preserving
// their relative order.
//
// An item matches query when query is a case-insensitive substring of its
// name or location; the empty query matches everything. An item matches
// category when category is "All" or equals the item's category exactly.
// Filter has no state and is safe for concurrent use.
func Filter(items []ContentItem, query, category string) []ContentItem {
	needle := strings.ToLower(query)
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if category != CategoryAll && item.Category != category {
			continue
		}
		if needle != "" && !containsFold(item.Name, needle) && !containsFold(item.Location, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the facet values for items: "All" followed by every
// distinct non-empty category in first-seen order.
func Categories(items []ContentItem) []string {
	seen := make(map[string]struct{})
	facets := []string{CategoryAll}
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		facets = append(facets, item.Category)
	}
	return facets
}
