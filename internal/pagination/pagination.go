// Package pagination slices deterministically ordered sequences into
// fixed-size pages. Listing endpoints share a single page size so page
// boundaries are stable across the global index, group pages, profiles
// and the follow feed.
package pagination

// DefaultPageSize is the number of posts shown per listing page.
const DefaultPageSize = 10

// Params is a validated page request. Construct via NewParams.
type Params struct {
	Page     int
	PageSize int
}

// NewParams builds Params from a raw page number. Non-positive page numbers
// clamp to 1; the final clamp against the total count happens in Window once
// the sequence length is known.
func NewParams(page int) Params {
	if page < 1 {
		page = 1
	}
	return Params{Page: page, PageSize: DefaultPageSize}
}

// TotalPages returns ceil(total/pageSize). An empty sequence still has one
// (empty) page so out-of-range requests have somewhere to clamp to.
func (p Params) TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return pages
}

// Window clamps the requested page into [1, TotalPages(total)] and returns
// the LIMIT/OFFSET window plus the clamped page number. Requests past the
// last page land on the last page rather than erroring.
func (p Params) Window(total int64) (limit, offset, page int) {
	totalPages := p.TotalPages(total)
	page = p.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return p.PageSize, (page - 1) * p.PageSize, page
}

// Paginate returns the sub-sequence [(page-1)*size, page*size) of items,
// applying the same clamping rule as Window.
func Paginate[T any](items []T, p Params) ([]T, int) {
	_, offset, page := p.Window(int64(len(items)))
	if offset >= len(items) {
		return items[:0], page
	}
	end := offset + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], page
}
