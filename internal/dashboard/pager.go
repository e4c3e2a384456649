package dashboard

import (
	"fmt"

	"taskdash/internal/models"
)

// Pager holds the pagination state for one list view. The page number is
// 1-based; server metadata is synced in via Apply and clamped defensively.
type Pager struct {
	Page     int
	PageSize int
	Info     models.PageInfo
}

// NewPager returns a pager positioned on the first page.
func NewPager(pageSize int) Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return Pager{Page: 1, PageSize: pageSize}
}

// Offset returns the request offset for the current page.
func (p Pager) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Apply syncs server pagination metadata into the pager. The server is
// authoritative for totals; the page number follows the clamped CurrentPage
// so a shrunken result set pulls the pager back into range.
func (p *Pager) Apply(info models.PageInfo) {
	p.Info = info.Clamped()
	p.Page = p.Info.CurrentPage
}

// Next advances one page if the server reported one. Reports whether the
// page changed.
func (p *Pager) Next() bool {
	if !p.Info.HasNextPage {
		return false
	}
	p.Page++
	return true
}

// Prev moves back one page if possible. Reports whether the page changed.
func (p *Pager) Prev() bool {
	if p.Page <= 1 {
		return false
	}
	p.Page--
	return true
}

// Reset returns to the first page, keeping the page size.
func (p *Pager) Reset() {
	p.Page = 1
}

// RangeLabel renders the "Showing A to B of N" footer. The bounds are
// guarded so a malformed total can never produce a negative range or an
// upper bound past the total.
func (p Pager) RangeLabel() string {
	total := p.Info.TotalCount
	if total < 0 {
		total = 0
	}
	start := (p.Page-1)*p.PageSize + 1
	end := p.Page * p.PageSize
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if total == 0 {
		start = 0
	}
	return fmt.Sprintf("Showing %d to %d of %d", start, end, total)
}
