package core

// PageSize is the fixed number of items shown per page on listings.
const PageSize = 10

// PageCount returns ceil(total/PageSize).
func PageCount(total int) int {
	return (total + PageSize - 1) / PageSize
}

// PageBounds returns the [start, end) slice window for 1-based page `page`.
// Pages out of range yield an empty window.
func PageBounds(total, page int) (start, end int) {
	if page < 1 {
		page = 1
	}
	start = (page - 1) * PageSize
	if start > total {
		return total, total
	}
	end = start + PageSize
	if end > total {
		end = total
	}
	return start, end
}
