// Package pagination slices fully fetched lists into pages. The API has no
// paging parameters, so every list is paged client-side.
package pagination

// Ellipsis marks a gap in the page strip returned by Pages.
const Ellipsis = -1

// DefaultPerPage matches the list views' default page size.
const DefaultPerPage = 5

// TotalPages returns the number of pages needed for total items.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Slice returns the items on 1-based page. Out-of-range pages are empty.
func Slice[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

// Pages returns the page numbers to display: the first and last page, the
// current page and its neighbours, with Ellipsis standing in for each run of
// omitted pages.
func Pages(total, perPage, current int) []int {
	n := TotalPages(total, perPage)
	pages := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		if i == 1 || i == n || (i >= current-1 && i <= current+1) {
			pages = append(pages, i)
		} else if len(pages) > 0 && pages[len(pages)-1] != Ellipsis {
			pages = append(pages, Ellipsis)
		}
	}
	return pages
}

// Pager tracks the current page of a list.
type Pager struct {
	Total   int
	PerPage int
	current int
}

// NewPager starts at page 1.
func NewPager(total, perPage int) Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Pager{Total: total, PerPage: perPage, current: 1}
}

// Current returns the 1-based current page.
func (p Pager) Current() int {
	if p.current < 1 {
		return 1
	}
	return p.current
}

// TotalPages returns the page count.
func (p Pager) TotalPages() int {
	return TotalPages(p.Total, p.PerPage)
}

// GoTo moves to page and reports whether it moved. Targets outside
// [1, TotalPages] and the current page are ignored.
func (p *Pager) GoTo(page int) bool {
	if page < 1 || page > p.TotalPages() || page == p.Current() {
		return false
	}
	p.current = page
	return true
}

// Next advances one page.
func (p *Pager) Next() bool { return p.GoTo(p.Current() + 1) }

// Prev goes back one page.
func (p *Pager) Prev() bool { return p.GoTo(p.Current() - 1) }

// CanNext reports whether a later page exists.
func (p Pager) CanNext() bool { return p.Current() < p.TotalPages() }

// CanPrev reports whether an earlier page exists.
func (p Pager) CanPrev() bool { return p.Current() > 1 }

// SetTotal updates the item count and pulls the current page back in range.
func (p *Pager) SetTotal(total int) {
	p.Total = total
	if last := p.TotalPages(); p.Current() > last {
		p.current = max(last, 1)
	}
}

// Offset returns the index of the first item on the current page.
func (p Pager) Offset() int {
	return (p.Current() - 1) * p.PerPage
}

// Page returns the current page of items.
func Page[T any](p Pager, items []T) []T {
	return Slice(items, p.Current(), p.PerPage)
}
