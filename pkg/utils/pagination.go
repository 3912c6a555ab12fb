package utils

// CalculateTotalPages rounds total/perPage up. Zero when there is nothing
// to page over.
func CalculateTotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

// CalculateOffset converts a 1-based page number to a row offset. Pages
// below 1 clamp to the first page.
func CalculateOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
