package viewport

// PageCount is ceil(total/pageSize), never less than 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Page returns the zero-based page of items. Pages outside the range come
// back empty; a non-positive pageSize returns every item as page 0.
func Page[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		if page == 0 {
			return items
		}
		return nil
	}
	if page < 0 {
		return nil
	}
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// ClampPage keeps page inside [0, PageCount-1].
func ClampPage(page, total, pageSize int) int {
	return max(0, min(page, PageCount(total, pageSize)-1))
}
