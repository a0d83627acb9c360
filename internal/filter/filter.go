// Package filter implements the list-filtering contract every list screen
// shares: a case-insensitive substring search over displayed text fields,
// intersected with an equality filter on one categorical field. Filtering is
// synchronous and pure; it only ever narrows the page already in memory and
// never touches the network.
package filter

import "strings"

// Options configures one filtering pass over a fetched list.
type Options[T any] struct {
	// Query is the free-text search; empty or blank matches everything.
	Query string
	// Fields yields the display strings the query is matched against.
	Fields func(T) []string
	// Category is the wanted categorical value; empty means all.
	Category string
	// CategoryOf yields an item's categorical value.
	CategoryOf func(T) string
}

// Apply returns the items matching both the text query and the category.
// The result is always the intersection of the two individual filters.
func Apply[T any](items []T, opts Options[T]) []T {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	var out []T
	for _, item := range items {
		if opts.Category != "" && opts.CategoryOf != nil && opts.CategoryOf(item) != opts.Category {
			continue
		}
		if query != "" && !matchesQuery(query, opts.Fields(item)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesQuery reports whether any field contains the already-lowered query.
func matchesQuery(loweredQuery string, fields []string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}
