package shared

// Filter carries the paging, search and ordering options of a list query.
// OrderBy is checked against a per-table whitelist by the repositories.
type Filter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// DefaultFilter is page one of twenty, newest first.
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 20, OrderDir: "desc"}
}

// Offset is the number of rows before Page. Pages below one count as one.
func (f Filter) Offset() int {
	return max(f.Page-1, 0) * f.PageSize
}
