package domain

// SearchPage is one page of multi-type search results
type SearchPage struct {
	Results    []MediaItem
	Page       int
	TotalPages int
}

// HasMore compares the reported page to the reported page count
func (p SearchPage) HasMore() bool {
	return p.Page < p.TotalPages
}
