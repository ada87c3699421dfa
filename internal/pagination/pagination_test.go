package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_NumPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{name: "empty set still has one page", total: 0, pageSize: 10, want: 1},
		{name: "exact multiple", total: 30, pageSize: 10, want: 3},
		{name: "partial last page", total: 31, pageSize: 10, want: 4},
		{name: "single record", total: 1, pageSize: 10, want: 1},
		{name: "page size one", total: 7, pageSize: 1, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.total, tt.pageSize)
			assert.Equal(t, tt.want, p.NumPages())
		})
	}
}

func TestPaginator_GetPage_Clamping(t *testing.T) {
	p := New(25, 10)

	page := p.GetPage(99)
	assert.Equal(t, 3, page.Number, "beyond-last clamps to last")
	assert.Equal(t, 20, page.Offset)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	page = p.GetPage(0)
	assert.Equal(t, 1, page.Number, "below-first clamps to first")
	assert.Equal(t, 0, page.Offset)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPaginator_GetPage_Metadata(t *testing.T) {
	p := New(31, 10)

	page := p.GetPage(2)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, int64(31), page.TotalCount)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	assert.Equal(t, 10, page.Offset)
	assert.Equal(t, 10, page.Limit)

	last := p.GetPage(4)
	assert.False(t, last.HasNext)
	// 31 mod 10 = 1 record on the last page
	assert.Equal(t, 30, last.Offset)
}

func TestPaginator_EmptySet(t *testing.T) {
	p := New(0, 10)
	page := p.GetPage(1)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Equal(t, 0, page.Offset)
}

func TestPaginator_LastPageSize(t *testing.T) {
	// ceil(M/N) pages; last page has M mod N items (or N if evenly divisible)
	for _, tt := range []struct {
		total    int64
		pageSize int
		lastLen  int64
	}{
		{30, 10, 10},
		{31, 10, 1},
		{5, 10, 5},
	} {
		p := New(tt.total, tt.pageSize)
		last := p.GetPage(p.NumPages())
		remaining := tt.total - int64(last.Offset)
		assert.Equal(t, tt.lastLen, remaining)
	}
}
