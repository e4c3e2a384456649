package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdash/internal/models"
)

func TestPager_RangeLabel(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int
		want     string
	}{
		{"first full page", 1, 10, 25, "Showing 1 to 10 of 25"},
		{"last partial page", 3, 10, 25, "Showing 21 to 25 of 25"},
		{"exact fit", 2, 10, 20, "Showing 11 to 20 of 20"},
		{"single item", 1, 10, 1, "Showing 1 to 1 of 1"},
		{"empty", 1, 10, 0, "Showing 0 to 0 of 0"},
		{"negative total from server", 1, 10, -5, "Showing 0 to 0 of 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(tt.pageSize)
			p.Page = tt.page
			p.Info.TotalCount = tt.total
			assert.Equal(t, tt.want, p.RangeLabel())
		})
	}
}

func TestPager_Apply_ClampsMalformedInfo(t *testing.T) {
	p := NewPager(10)
	p.Page = 3

	p.Apply(models.PageInfo{
		TotalCount:  -3,
		TotalPages:  -1,
		CurrentPage: -7,
	})

	assert.Equal(t, 0, p.Info.TotalCount)
	assert.Equal(t, 0, p.Info.TotalPages)
	assert.Equal(t, 1, p.Page)
}

func TestPager_Apply_PullsPageBackIntoRange(t *testing.T) {
	// Page 5 was requested but the result set shrank to 2 pages.
	p := NewPager(10)
	p.Page = 5

	p.Apply(models.PageInfo{
		TotalCount:  15,
		TotalPages:  2,
		CurrentPage: 5,
	})

	assert.Equal(t, 2, p.Page)
}

func TestPager_Navigation(t *testing.T) {
	p := NewPager(10)
	p.Apply(models.PageInfo{
		HasNextPage: true,
		TotalCount:  25,
		CurrentPage: 1,
		TotalPages:  3,
	})

	assert.False(t, p.Prev(), "cannot go before page 1")
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Offset())

	// Server says this is the last page now.
	p.Apply(models.PageInfo{
		HasNextPage:     false,
		HasPreviousPage: true,
		TotalCount:      25,
		CurrentPage:     3,
		TotalPages:      3,
	})
	assert.False(t, p.Next(), "no next page reported by server")
	assert.Equal(t, "Showing 21 to 25 of 25", p.RangeLabel())

	assert.True(t, p.Prev())
	assert.Equal(t, 2, p.Page)

	p.Reset()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPager_GuardsPageSize(t *testing.T) {
	p := NewPager(0)
	assert.Equal(t, 1, p.PageSize)
}
