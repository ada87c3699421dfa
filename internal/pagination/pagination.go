// Package pagination slices ordered record sets into fixed-size pages.
package pagination

// Page describes one slice of an ordered record set plus navigation metadata.
// Offset and Limit are ready to hand to the persistence layer.
type Page struct {
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Offset      int   `json:"-"`
	Limit       int   `json:"-"`
}

// Paginator splits a record set of a known size into pages of a fixed size.
type Paginator struct {
	totalCount int64
	pageSize   int
}

// New creates a Paginator over totalCount records with the given page size.
// A non-positive page size is coerced to 1.
func New(totalCount int64, pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}
	return &Paginator{totalCount: totalCount, pageSize: pageSize}
}

// NumPages returns the total page count. An empty record set still has one
// (empty) page so every request resolves to a valid page.
func (p *Paginator) NumPages() int {
	if p.totalCount == 0 {
		return 1
	}
	return int((p.totalCount + int64(p.pageSize) - 1) / int64(p.pageSize))
}

// GetPage resolves the requested 1-based page number, clamping out-of-range
// values to the nearest valid page instead of erroring.
func (p *Paginator) GetPage(number int) Page {
	last := p.NumPages()
	if number < 1 {
		number = 1
	}
	if number > last {
		number = last
	}

	return Page{
		Number:      number,
		TotalPages:  last,
		TotalCount:  p.totalCount,
		HasNext:     number < last,
		HasPrevious: number > 1,
		Offset:      (number - 1) * p.pageSize,
		Limit:       p.pageSize,
	}
}
