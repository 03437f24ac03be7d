package tourism

import (
	"sort"
	"strings"
)

// TopRated returns at most n active items sorted by descending rating.
// Missing ratings count as 0 and ties keep their input order.
func TopRated(items []ContentItem, n int) []ContentItem {
	if n <= 0 {
		return []ContentItem{}
	}

	ranked := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if item.Inactive() {
			continue
		}
		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RatingOrZero() > ranked[j].RatingOrZero()
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MatchingText returns the items whose name or location contains term,
// ignoring case. An empty term matches everything.
func MatchingText(items []ContentItem, term string) []ContentItem {
	needle := strings.ToLower(term)
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if containsFold(item.Name, needle) || containsFold(item.Location, needle) {
			out = append(out, item)
		}
	}
	return out
}

// MatchingLocation returns the items whose location contains loc, ignoring case.
func MatchingLocation(items []ContentItem, loc string) []ContentItem {
	needle := strings.ToLower(loc)
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if containsFold(item.Location, needle) {
			out = append(out, item)
		}
	}
	return out
}

// containsFold expects needle to be lowercased already.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
