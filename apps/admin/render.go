package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/smartattendance/admin/core/table"
)

var sortMarkers = map[string]string{
	"ascending":  " ▲",
	"descending": " ▼",
}

func tableAlign(a table.Align) int {
	switch a {
	case table.AlignCenter:
		return tablewriter.ALIGN_CENTER
	case table.AlignRight:
		return tablewriter.ALIGN_RIGHT
	default:
		return tablewriter.ALIGN_LEFT
	}
}

// renderView writes v as a text table followed by its footer.
func renderView(w io.Writer, v table.View, recordCount int) {
	if v.Error != "" {
		fmt.Fprintf(w, "error: %s\n", v.Error)
	}

	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)

	headers := make([]string, 0, len(v.Headers))
	aligns := make([]int, 0, len(v.Headers))
	for _, h := range v.Headers {
		headers = append(headers, h.Label+sortMarkers[h.Sort])
		aligns = append(aligns, tableAlign(h.Align))
	}
	t.SetHeader(headers)
	t.SetColumnAlignment(aligns)

	for _, row := range v.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			if row.Placeholder {
				cells = append(cells, "…")
				continue
			}
			cells = append(cells, cell.Text)
		}
		t.Append(cells)
	}
	t.Render()

	fmt.Fprint(w, footer(v, recordCount))
}

// footer is the text under the table: the empty message, the search summary and the pagination.
func footer(v table.View, recordCount int) string {
	var sb strings.Builder
	if v.Message != "" {
		sb.WriteString(v.Message + "\n")
	}
	if v.ResultCount != nil {
		fmt.Fprintf(&sb, "%d of %d users match %q\n", *v.ResultCount, recordCount, v.Search)
	}

	p := v.Pagination
	fmt.Fprintf(&sb, "Page %d of %d", p.CurrentPage, p.TotalPages)
	if !p.Disabled {
		sb.WriteString("  " + navLine(p))
	}
	sb.WriteString("\n")
	return sb.String()
}

// navLine renders the compact page navigation, e.g. "‹ 1 … 4 [5] 6 … 9 ›".
// Disabled directions are left out.
func navLine(p table.Pagination) string {
	parts := make([]string, 0, len(p.Items)+2)
	if !p.PrevDisabled {
		parts = append(parts, "‹")
	}
	for _, item := range p.Items {
		switch {
		case item.Ellipsis:
			parts = append(parts, "…")
		case item.Current:
			parts = append(parts, "["+strconv.Itoa(item.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(item.Page))
		}
	}
	if !p.NextDisabled {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}
