package views

import "fmt"

const defaultPageSize = 10

// Paginator tracks a cursor over a list and the page that contains it
type Paginator struct {
	pageSize int
	offset   int
	cursor   int
	total    int
}

// NewPaginator creates a paginator showing pageSize rows per page
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Paginator{pageSize: pageSize}
}

// SetPageSize changes the rows per page, e.g. after a terminal resize
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = defaultPageSize
	}
	p.pageSize = size
	p.follow()
}

// SetTotal sets the list length and clamps the cursor into it
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.SetCursor(p.cursor)
}

// Total returns the list length
func (p *Paginator) Total() int {
	return p.total
}

// Cursor returns the absolute cursor index
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.total-1))
	p.follow()
}

// Up moves the cursor up one row. Returns false at the top.
func (p *Paginator) Up() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// Down moves the cursor down one row. Returns false at the bottom.
func (p *Paginator) Down() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	if p.offset+p.pageSize >= p.total {
		return false
	}
	p.SetCursor(p.offset + p.pageSize)
	return true
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.offset == 0 {
		return false
	}
	p.SetCursor(p.offset - p.pageSize)
	return true
}

// VisibleRange returns the [start, end) indices of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	return p.offset, min(p.offset+p.pageSize, p.total)
}

// TotalPages returns the number of pages, at least 1
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.offset/p.pageSize + 1
}

// PageInfo renders "page x/y", or "" when everything fits on one page
func (p *Paginator) PageInfo() string {
	if p.TotalPages() <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d/%d", p.CurrentPage(), p.TotalPages())
}

// follow keeps the page aligned on the page containing the cursor
func (p *Paginator) follow() {
	p.offset = (p.cursor / p.pageSize) * p.pageSize
}
