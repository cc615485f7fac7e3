// Package pagination implements page descriptor math shared by both services.
package pagination

// Meta describes one page of an ordered collection.
type Meta struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// Page couples a slice of items with its descriptor.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// NewPage builds a page descriptor for the given slice. Total is the size of
// the whole collection, not of the slice. Pages is ceil(total/pageSize) and
// 0 for an empty collection; a page beyond the range simply carries an empty
// Items slice with accurate Meta.
func NewPage[T any](items []T, page, pageSize int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Meta: Meta{
			Page:  page,
			Pages: Pages(total, pageSize),
			Total: total,
		},
	}
}

// Pages returns ceil(total/pageSize), or 0 when the collection is empty.
func Pages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Clamp normalizes the requested page and page size. Page defaults to 1,
// pageSize to defaultSize, and pageSize never exceeds maxSize.
func Clamp(page, pageSize, defaultSize, maxSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

// Offset returns the store offset for a 1-based page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// VisiblePages returns the ascending, duplicate-free list of page numbers a
// paging widget should render: the first and last edge pages plus around
// pages on each side of the current one. Gaps are left to the caller.
func VisiblePages(pages, page, edge, around int) []int {
	if pages <= 0 {
		return nil
	}
	var out []int
	for n := 1; n <= pages; n++ {
		switch {
		case n <= edge:
			out = append(out, n)
		case n > pages-edge:
			out = append(out, n)
		case n >= page-around && n <= page+around:
			out = append(out, n)
		}
	}
	return out
}
