package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattendance/admin/core/table"
	"github.com/smartattendance/admin/core/user"
)

func checkText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Errorf("failed! text mismatch:\n%s", diff)
}

func pagination(cur, total int) table.Pagination {
	disabled := total <= 1
	return table.Pagination{
		CurrentPage:  cur,
		TotalPages:   total,
		Items:        table.PageItems(cur, total),
		PrevDisabled: disabled || cur <= 1,
		NextDisabled: disabled || cur >= total,
		Disabled:     disabled,
	}
}

func Test_navLine(t *testing.T) {
	tests := []struct {
		cur, total int
		want       string
	}{
		{cur: 1, total: 1, want: "[1]"},
		{cur: 1, total: 3, want: "[1] 2 3 ›"},
		{cur: 3, total: 3, want: "‹ 1 2 [3]"},
		{cur: 5, total: 9, want: "‹ 1 … 3 4 [5] 6 7 … 9 ›"},
		{cur: 1, total: 9, want: "[1] 2 3 … 9 ›"},
		{cur: 4, total: 9, want: "‹ 1 2 3 [4] 5 6 … 9 ›"},
	}
	for _, tt := range tests {
		if got := navLine(pagination(tt.cur, tt.total)); got != tt.want {
			t.Errorf("failed! navLine(%d, %d) = %q; want %q", tt.cur, tt.total, got, tt.want)
		}
	}
}

func Test_footer(t *testing.T) {
	three := 3

	tests := []struct {
		name        string
		view        table.View
		recordCount int
		want        string
	}{
		{
			name: "single page",
			view: table.View{Pagination: pagination(1, 1)},
			want: "Page 1 of 1\n",
		},
		{
			name: "no data",
			view: table.View{Message: table.MsgNoData, Pagination: pagination(1, 1)},
			want: "No data available.\nPage 1 of 1\n",
		},
		{
			name:        "searching",
			view:        table.View{Search: "an", ResultCount: &three, Pagination: pagination(5, 9)},
			recordCount: 40,
			want:        "3 of 40 users match \"an\"\nPage 5 of 9  ‹ 1 … 3 4 [5] 6 7 … 9 ›\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkText(t, footer(tt.view, tt.recordCount), tt.want)
		})
	}
}

func Test_renderView(t *testing.T) {
	eng, err := table.New(user.TableColumns(), table.WithPageSize(2))
	require.NoError(t, err)

	joined := time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)
	eng.SetRecords(user.Records([]user.User{
		{ID: "1", Username: "awe", Name: "User", Email: "awe@test.cd", IsActive: true, CreatedAt: joined},
		{ID: "2", Username: "hero", Roles: []string{user.RoleStudent}, CreatedAt: joined, LastLogin: &joined},
		{ID: "3", Username: "ndog", CreatedAt: joined},
	}))
	require.True(t, eng.ToggleSort("username"))

	var buf bytes.Buffer
	renderView(&buf, eng.View(table.Status{Error: "boom"}), eng.RecordCount())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "error: boom\n"), out)
	assert.Contains(t, out, "Username ▲")
	assert.Contains(t, out, "awe@test.cd")
	assert.Contains(t, out, "2021-03-04 10:30")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, table.EmptyCell)
	assert.NotContains(t, out, "ndog")
	assert.True(t, strings.HasSuffix(out, "Page 1 of 2  [1] 2 ›\n"), out)

	buf.Reset()
	renderView(&buf, eng.View(table.Status{Loading: true}), eng.RecordCount())
	out = buf.String()
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "awe")
	assert.True(t, strings.HasSuffix(out, "Page 1 of 2\n"), out)
}
