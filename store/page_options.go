package store

// DefaultPageSize is the feed page size used when the client does not ask
// for one.
const DefaultPageSize = 4

// DefaultSortField is the derived field the feed is ranked by.
const DefaultSortField = "popularity"

// PageOptions carries the pagination and sorting parameters of a feed read.
// Zero values select the defaults: page 0, size 4, popularity descending.
type PageOptions struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder int
}

// Limit returns the page size.
func (o PageOptions) Limit() int {
	if o.Size > 0 {
		return o.Size
	}
	return DefaultPageSize
}

// Offset returns the number of documents to skip.
func (o PageOptions) Offset() int {
	if o.Page > 0 {
		return o.Page * o.Limit()
	}
	return 0
}

// SortField returns the requested sort field, defaulting to popularity.
func (o PageOptions) SortField() string {
	if o.SortBy != "" {
		return o.SortBy
	}
	return DefaultSortField
}

// Order returns 1 for ascending, -1 for descending (the default).
func (o PageOptions) Order() int {
	if o.SortOrder > 0 {
		return 1
	}
	return -1
}
