package table

// Option configures an Engine at construction.
type Option func(*config)

type config struct {
	noSearch     bool
	pageSize     int
	page         int
	totalPages   int
	onPageChange func(int)
}

// WithPageSize sets the internal-mode page size. Values <= 0 keep
// DefaultPageSize.
func WithPageSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithSearch enables or disables searching; engines are searchable by default.
func WithSearch(enabled bool) Option {
	return func(c *config) {
		c.noSearch = !enabled
	}
}

// WithServerPagination puts the engine in External mode: page and
// totalPages are owned by the caller and page changes are relayed to
// onPageChange. A nil onPageChange leaves the engine in Internal mode.
func WithServerPagination(page, totalPages int, onPageChange func(page int)) Option {
	return func(c *config) {
		c.page = page
		c.totalPages = totalPages
		c.onPageChange = onPageChange
	}
}

// Engine holds the search, sort and page state of one table and derives the
// displayed rows from it. It is not safe for concurrent use.
type Engine struct {
	columns []Column
	byKey   map[string]Column
	mode    Mode

	searchable bool

	records []Record
	query   string
	sort    SortState
	page    int // Internal mode only

	// derived
	filtered []Record
	sorted   []Record
	current  Page
}

// New returns an Engine for columns. The paging mode is fixed here for the
// engine's lifetime.
func New(columns []Column, opts ...Option) (*Engine, error) {
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	conf := config{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&conf)
	}

	e := &Engine{
		columns: append([]Column(nil), columns...),
		byKey:   make(map[string]Column, len(columns)),
		page:    1,

		searchable: !conf.noSearch,
	}
	for _, col := range e.columns {
		e.byKey[col.Key] = col
	}
	if conf.onPageChange != nil {
		e.mode = External{Page: conf.page, TotalPages: conf.totalPages, OnPageChange: conf.onPageChange}
	} else {
		e.mode = Internal{PageSize: conf.pageSize}
	}
	e.derive()
	return e, nil
}

// derive runs filter -> sort -> paginate over the current state.
func (e *Engine) derive() {
	e.filtered = Filter(e.records, e.query, e.columns)
	e.sorted = Sort(e.filtered, e.sort)
	e.current = Paginate(e.sorted, e.mode, e.page)
	if _, ok := e.mode.(Internal); ok {
		e.page = e.current.CurrentPage
	}
}

// SetRecords replaces the raw records. The slice is read, never modified.
func (e *Engine) SetRecords(records []Record) {
	e.records = records
	e.derive()
}

// SetServerPage updates the caller-owned page and total after an external
// fetch. It is ignored in Internal mode.
func (e *Engine) SetServerPage(page, totalPages int) {
	m, ok := e.mode.(External)
	if !ok {
		return
	}
	m.Page, m.TotalPages = page, totalPages
	e.mode = m
	e.derive()
}

// Search sets the free-text query. In Internal mode it also returns to page 1.
// In External mode the page is the caller's: hosts paging on a server must
// reset their own page when the query changes.
// It reports false, changing nothing, when searching is disabled.
func (e *Engine) Search(query string) bool {
	if !e.searchable {
		return false
	}
	e.query = query
	if _, ok := e.mode.(Internal); ok {
		e.page = 1
	}
	e.derive()
	return true
}

// ToggleSort activates the header of key. It reports false, changing
// nothing, for unknown or unsortable columns.
func (e *Engine) ToggleSort(key string) bool {
	if !e.sortable(key) {
		return false
	}
	e.sort = e.sort.Toggle(key)
	e.derive()
	return true
}

// SetSort restores a sort state, for hosts that carry the state between
// engine instances. An inactive state clears the sort.
func (e *Engine) SetSort(state SortState) bool {
	if state.Active() && !e.sortable(state.Key) {
		return false
	}
	if !state.Active() {
		state = SortState{}
	}
	e.sort = state
	e.derive()
	return true
}

func (e *Engine) sortable(key string) bool {
	col, ok := e.byKey[key]
	return ok && col.IsSortable()
}

// RequestPage moves to page p. Requests outside [1, TotalPages] are rejected
// and leave the page unchanged. In External mode the request is relayed to
// the caller, which owns the page; nothing is sliced locally.
func (e *Engine) RequestPage(p int) bool {
	if p < 1 || p > e.current.TotalPages {
		return false
	}
	switch m := e.mode.(type) {
	case External:
		m.OnPageChange(p)
	case Internal:
		if p == e.page {
			return true
		}
		e.page = p
		e.derive()
	}
	return true
}

// NextPage requests the page after the current one.
func (e *Engine) NextPage() bool { return e.RequestPage(e.current.CurrentPage + 1) }

// PrevPage requests the page before the current one.
func (e *Engine) PrevPage() bool { return e.RequestPage(e.current.CurrentPage - 1) }

// Rows returns the displayed row window.
func (e *Engine) Rows() []Record { return e.current.Rows }

// Page returns the displayed window and its position.
func (e *Engine) Page() Page { return e.current }

// Query returns the search text as entered.
func (e *Engine) Query() string { return e.query }

// SortState returns the active sort.
func (e *Engine) SortState() SortState { return e.sort }

// ResultCount is the number of records left after searching, across pages.
func (e *Engine) ResultCount() int { return len(e.filtered) }

// RecordCount is the number of raw records.
func (e *Engine) RecordCount() int { return len(e.records) }

// Searchable reports whether Search is enabled.
func (e *Engine) Searchable() bool { return e.searchable }

// Mode returns the paging mode chosen at construction.
func (e *Engine) Mode() Mode { return e.mode }

// Columns returns a copy of the column set.
func (e *Engine) Columns() []Column { return append([]Column(nil), e.columns...) }
