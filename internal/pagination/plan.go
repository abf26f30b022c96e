package pagination

// Page is one planned offset/limit request.
type Page struct {
	Index int
	Skip  int
	Top   int
}

// EffectivePageSize clamps requested to (0, maxTop]. A non-positive request
// means maxTop.
func EffectivePageSize(requested, maxTop int) int {
	if requested <= 0 || requested > maxTop {
		return maxTop
	}

	return requested
}

// PageCount returns ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}

// Plan splits total records into pages of pageSize. The last page asks only
// for the remaining records.
func Plan(total, pageSize int) []Page {
	count := PageCount(total, pageSize)
	pages := make([]Page, 0, count)

	for i := range count {
		skip := i * pageSize
		pages = append(pages, Page{
			Index: i,
			Skip:  skip,
			Top:   min(pageSize, total-skip),
		})
	}

	return pages
}
