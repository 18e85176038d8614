package model

import (
	"sort"
	"strings"
)

// Search filters items by a case-insensitive substring match against name,
// SKU, and brand. An empty query returns all items in their original order.
func Search(items []Item, query string) []Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)

	var matched []Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.SKU), q) ||
			strings.Contains(strings.ToLower(item.Brand), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

// SortByRecency returns the items ordered by creation time, newest first.
// The sort is stable: items with identical timestamps keep their relative
// order. The input slice is not modified.
func SortByRecency(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	return sorted
}
