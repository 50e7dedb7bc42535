package insights

const (
	// DefaultPerPage is the expanded commit list page size.
	DefaultPerPage = 10
	// PreviewSize is how many commits the collapsed list shows.
	PreviewSize = 3
)

// Page returns the 1-based page of records. Out-of-range pages are empty.
func Page(records []CommitRecord, page, perPage int) []CommitRecord {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 || page-1 >= PageCount(len(records), perPage) {
		return []CommitRecord{}
	}
	start := (page - 1) * perPage
	end := start + min(perPage, len(records)-start)
	return records[start:end]
}

// PageCount is the number of pages needed for n records.
func PageCount(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := n / perPage
	if n%perPage != 0 {
		pages++
	}
	return pages
}

// Preview returns the first PreviewSize records.
func Preview(records []CommitRecord) []CommitRecord {
	return records[:min(PreviewSize, len(records))]
}
