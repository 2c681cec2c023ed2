package engine

// PageSizes is the fixed set the settings page offers.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

// Paginate slices the visible set into the 1-based page window.
// totalPages is never below 1: an empty set still shows one empty page.
// An out-of-range page clamps to the last page; callers are still
// expected to reset to page 1 whenever filters, search, sort or page
// size change.
func Paginate[T any](items []T, page, pageSize int) (pageItems []T, totalPages int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages = (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// ClampPage mirrors Paginate's page normalization for callers that need
// the corrected index itself.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}
