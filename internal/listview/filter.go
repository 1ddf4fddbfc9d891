package listview

import "strings"

// PageSize is the fixed page size of every admin list view.
const PageSize = 5

// Filter applies the case-insensitive substring search to one fetched page.
// The search is deliberately scoped to the loaded page, not the full
// upstream collection. fields extracts the searchable field values of an
// item.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// PageAfterDelete decides which page to show after a delete: the same page
// is refetched, unless the deleted row was the last one on the last page,
// in which case the view steps back one page.
func PageAfterDelete(page, remainingOnPage int) int {
	if remainingOnPage == 0 && page > 1 {
		return page - 1
	}
	if page < 1 {
		return 1
	}
	return page
}
