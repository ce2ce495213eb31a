package table

// DefaultPageSize is the internal-mode page size when none is given.
const DefaultPageSize = 10

// navRadius is how many pages either side of the current page stay visible.
const navRadius = 2

// Mode is the paging mode of an engine, fixed at construction.
// It is either External or Internal.
type Mode interface {
	isMode()
}

// External paging is owned by the caller: rows arrive already sliced,
// Page/TotalPages are the caller's, and page changes are relayed to
// OnPageChange.
type External struct {
	Page         int
	TotalPages   int
	OnPageChange func(page int)
}

// Internal paging is computed and owned by the engine over fully loaded rows.
type Internal struct {
	PageSize int
}

func (External) isMode() {}
func (Internal) isMode() {}

// Page is a paginated window of rows plus its position.
type Page struct {
	Rows        []Record `json:"-"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
}

// Paginate slices sorted according to mode. currentPage is only read in
// Internal mode. The returned page always satisfies
// 1 <= CurrentPage <= TotalPages.
func Paginate(sorted []Record, mode Mode, currentPage int) Page {
	switch m := mode.(type) {
	case External:
		total := atLeastOne(m.TotalPages)
		return Page{
			Rows:        sorted,
			CurrentPage: clamp(m.Page, 1, total),
			TotalPages:  total,
		}
	case Internal:
		size := m.PageSize
		if size <= 0 {
			size = DefaultPageSize
		}
		total := TotalPages(len(sorted), size)
		page := clamp(currentPage, 1, total)
		start := (page - 1) * size
		end := start + size
		if end > len(sorted) {
			end = len(sorted)
		}
		return Page{
			Rows:        sorted[start:end:end],
			CurrentPage: page,
			TotalPages:  total,
		}
	}
	return Page{Rows: sorted, CurrentPage: 1, TotalPages: 1}
}

// TotalPages is max(1, ceil(count / pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return atLeastOne((count + pageSize - 1) / pageSize)
}

// PageItem is one entry of the compact page navigation: a page button or
// an ellipsis marker.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageItems keeps the first page, the last page and every page within two of
// current; each gap of more than one page becomes a single ellipsis.
func PageItems(current, total int) []PageItem {
	total = atLeastOne(total)
	current = clamp(current, 1, total)

	items := make([]PageItem, 0, 2*navRadius+5)
	prev := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && abs(p-current) > navRadius {
			continue
		}
		if prev > 0 && p-prev > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: p, Current: p == current})
		prev = p
	}
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
