package pagination

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 9

// Paginate splits items into contiguous, non-overlapping pages of at most
// pageSize elements. A pageSize <= 0 falls back to DefaultPageSize.
// An empty input yields zero pages, not one empty page.
func Paginate[T any](items []T, pageSize int) [][]T {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if len(items) == 0 {
		return [][]T{}
	}

	pages := make([][]T, 0, TotalPages(len(items), pageSize))
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		// Full slice expression so appending to a page can't clobber the next one
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, pageSize int) int {
	if n <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (n + pageSize - 1) / pageSize
}
