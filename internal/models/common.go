package models

// Pagination holds list paging parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns the first page of 20 entries.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: 20}
}

// Offset calculates the SQL offset for the current page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		p.Page = 1
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the page size clamped to 1..100.
func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}
