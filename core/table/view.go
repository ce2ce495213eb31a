package table

import (
	"strconv"
	"strings"
)

const (
	// PlaceholderRows is the number of placeholder rows shown while loading.
	PlaceholderRows = 6

	// EmptyCell is shown for null values in columns without a RenderFunc.
	EmptyCell = "—"

	MsgNoData  = "No data available."
	MsgNoMatch = "No results match your search."
)

// BodyState is which of the mutually exclusive table bodies is shown.
type BodyState string

const (
	BodyLoading   BodyState = "loading"
	BodyEmpty     BodyState = "empty"
	BodyNoMatch   BodyState = "no_match"
	BodyPopulated BodyState = "populated"
)

// Status is host-owned state passed to View; the engine does not keep it.
type Status struct {
	Loading bool
	Error   string
}

type (
	// View is the renderable state of a table.
	View struct {
		Headers     []Header   `json:"headers"`
		Body        BodyState  `json:"body"`
		Message     string     `json:"message,omitempty"`
		Rows        []Row      `json:"rows"`
		Error       string     `json:"error,omitempty"`
		Search      string     `json:"search"`
		ResultCount *int       `json:"result_count,omitempty"` // set while searching
		Searchable  bool       `json:"searchable"`
		Pagination  Pagination `json:"pagination"`
		Interactive bool       `json:"interactive"`
	}

	Header struct {
		Key      string `json:"key"`
		Label    string `json:"label"`
		Width    string `json:"width,omitempty"`
		Align    Align  `json:"align"`
		Sortable bool   `json:"sortable"`
		Sort     string `json:"sort"` // ascending | descending | none
	}

	Row struct {
		ID          string `json:"id"`
		Placeholder bool   `json:"placeholder,omitempty"`
		Cells       []Cell `json:"cells"`
	}

	Cell struct {
		Key   string `json:"key"`
		Text  string `json:"text"`
		Align Align  `json:"align"`
	}

	// Pagination is the page summary and navigation controls.
	Pagination struct {
		CurrentPage  int        `json:"current_page"`
		TotalPages   int        `json:"total_pages"`
		Items        []PageItem `json:"items"`
		PrevDisabled bool       `json:"prev_disabled"`
		NextDisabled bool       `json:"next_disabled"`
		Disabled     bool       `json:"disabled"`
	}
)

// View assembles the table for display. With no rows the body is "no match"
// while a search is active, "no data" otherwise. Loading replaces only the row area:
// search text and sort selection are kept, and interaction is reported as
// disabled. Error is shown as a banner and changes nothing else.
func (e *Engine) View(status Status) View {
	v := View{
		Headers:     e.headers(),
		Error:       status.Error,
		Search:      e.query,
		Searchable:  e.searchable,
		Pagination:  e.pagination(status.Loading),
		Interactive: !status.Loading,
	}
	if strings.TrimSpace(e.query) != "" {
		n := len(e.filtered)
		v.ResultCount = &n
	}

	switch {
	case status.Loading:
		v.Body = BodyLoading
		v.Rows = e.placeholderRows()
	case len(e.current.Rows) == 0 && v.ResultCount != nil:
		v.Body = BodyNoMatch
		v.Message = MsgNoMatch
		v.Rows = []Row{}
	case len(e.current.Rows) == 0:
		v.Body = BodyEmpty
		v.Message = MsgNoData
		v.Rows = []Row{}
	default:
		v.Body = BodyPopulated
		v.Rows = e.renderRows()
	}
	return v
}

func (e *Engine) headers() []Header {
	headers := make([]Header, 0, len(e.columns))
	for _, col := range e.columns {
		h := Header{
			Key:      col.Key,
			Label:    col.Header,
			Width:    col.Width,
			Align:    col.Alignment(),
			Sortable: col.IsSortable(),
			Sort:     "none",
		}
		if e.sort.Key == col.Key {
			h.Sort = e.sort.Direction.String()
		}
		headers = append(headers, h)
	}
	return headers
}

func (e *Engine) renderRows() []Row {
	// row ids fall back to the position in the sorted, searched rows
	offset := 0
	if m, ok := e.mode.(Internal); ok {
		size := m.PageSize
		if size <= 0 {
			size = DefaultPageSize
		}
		offset = (e.current.CurrentPage - 1) * size
	}

	rows := make([]Row, 0, len(e.current.Rows))
	for i, rec := range e.current.Rows {
		row := Row{ID: rec.ID(offset + i), Cells: make([]Cell, 0, len(e.columns))}
		for _, col := range e.columns {
			row.Cells = append(row.Cells, Cell{
				Key:   col.Key,
				Text:  RenderCell(col, rec),
				Align: col.Alignment(),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func (e *Engine) placeholderRows() []Row {
	rows := make([]Row, PlaceholderRows)
	for i := range rows {
		cells := make([]Cell, len(e.columns))
		for j, col := range e.columns {
			cells[j] = Cell{Key: col.Key, Align: col.Alignment()}
		}
		rows[i] = Row{ID: "placeholder-" + strconv.Itoa(i), Placeholder: true, Cells: cells}
	}
	return rows
}

func (e *Engine) pagination(loading bool) Pagination {
	cur, total := e.current.CurrentPage, e.current.TotalPages
	disabled := total <= 1 || loading
	return Pagination{
		CurrentPage:  cur,
		TotalPages:   total,
		Items:        PageItems(cur, total),
		PrevDisabled: disabled || cur <= 1,
		NextDisabled: disabled || cur >= total,
		Disabled:     disabled,
	}
}

// RenderCell renders the value of col in rec: through col.Render when set,
// otherwise its DisplayString, with EmptyCell for null.
func RenderCell(col Column, rec Record) string {
	v := rec.Value(col.Key)
	if col.Render != nil {
		return col.Render(v, rec)
	}
	if v == nil {
		return EmptyCell
	}
	return DisplayString(v)
}
