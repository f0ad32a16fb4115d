package core

// DefaultPageSize is the number of rows shown per page when none is configured.
const DefaultPageSize = 10

// PageState is a snapshot of a paginator for rendering.
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
	TotalPages   int
}

// HasPrev reports whether PrevPage would move.
func (p PageState) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether NextPage would move.
func (p PageState) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Paginator slices a collection into fixed-size pages.
//
// Invariant: 1 <= CurrentPage <= TotalPages after every call.
// Out-of-range requests are clamped, never rejected.
type Paginator struct {
	page  int
	size  int
	total int
}

// NewPaginator returns a paginator on page 1. Sizes below 1 become 1.
func NewPaginator(size int) *Paginator {
	if size < 1 {
		size = 1
	}
	return &Paginator{page: 1, size: size}
}

// CurrentPage returns the 1-based current page.
func (p *Paginator) CurrentPage() int { return p.page }

// ItemsPerPage returns the page size.
func (p *Paginator) ItemsPerPage() int { return p.size }

// TotalItems returns the size of the collection last passed to SetTotal.
func (p *Paginator) TotalItems() int { return p.total }

// TotalPages returns ceil(TotalItems / ItemsPerPage). An empty collection
// is one empty page.
func (p *Paginator) TotalPages() int {
	// total+size-1 would overflow for sizes near math.MaxInt.
	n := p.total / p.size
	if p.total%p.size != 0 {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// SetTotal records a new collection size and clamps the current page down
// when the collection shrank below it.
func (p *Paginator) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
	p.clamp()
}

// GoToPage moves to page n, clamped into [1, max(1, TotalPages)].
func (p *Paginator) GoToPage(n int) {
	p.page = n
	p.clamp()
}

// NextPage advances one page; no-op on the last page.
func (p *Paginator) NextPage() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// PrevPage goes back one page; no-op on the first page.
func (p *Paginator) PrevPage() {
	if p.page > 1 {
		p.page--
	}
}

// SetItemsPerPage changes the page size and returns to page 1.
func (p *Paginator) SetItemsPerPage(n int) {
	if n < 1 {
		n = 1
	}
	p.size = n
	p.page = 1
}

// Bounds returns the half-open index range [start, end) of the current page.
func (p *Paginator) Bounds() (start, end int) {
	start = (p.page - 1) * p.size
	if start > p.total {
		start = p.total
	}
	end = p.total
	if p.size < p.total-start {
		end = start + p.size
	}
	return start, end
}

// State returns a snapshot for rendering.
func (p *Paginator) State() PageState {
	return PageState{
		CurrentPage:  p.page,
		ItemsPerPage: p.size,
		TotalItems:   p.total,
		TotalPages:   p.TotalPages(),
	}
}

// Window returns up to width consecutive page numbers centred on the current page.
func (p *Paginator) Window(width int) []int {
	last := p.TotalPages()
	if width < 1 {
		width = 1
	}
	if width > last {
		width = last
	}
	start := p.page - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > last {
		start = last - width + 1
	}
	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

func (p *Paginator) clamp() {
	if p.page < 1 {
		p.page = 1
	}
	if last := p.TotalPages(); p.page > last {
		p.page = last
	}
}

// Page returns the items of the paginator's current page. The paginator's
// total is synchronised with len(items) first, so a shrunken collection
// never leaves the paginator on a dangling page.
func Page[E any](items []E, p *Paginator) []E {
	if p.TotalItems() != len(items) {
		p.SetTotal(len(items))
	}
	start, end := p.Bounds()
	return items[start:end]
}
