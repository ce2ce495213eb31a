package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattendance/admin/core/table"
)

func TestTableColumns(t *testing.T) {
	require.NoError(t, table.ValidateColumns(TableColumns()))

	for _, col := range TableColumns() {
		if !col.IsSortable() {
			continue
		}
		assert.Contains(t, OrderingFields, col.Key, "sortable columns must be orderable in storage")
	}
}

func TestRecords(t *testing.T) {
	joined := time.Date(2021, 1, 10, 9, 30, 0, 0, time.UTC)
	login := joined.Add(26 * time.Hour)
	users := []User{
		{ID: "u1", Name: "Grace", Username: "grace", Email: "grace@test.cd", IsActive: true,
			Roles: []string{RoleAdminOwner, RoleTeacher}, CreatedAt: joined, LastLogin: &login},
		{ID: "u2", Username: "ndog", Roles: nil, CreatedAt: joined},
	}

	e, err := table.New(TableColumns())
	require.NoError(t, err)
	e.SetRecords(Records(users))
	require.True(t, e.ToggleSort("username"))

	v := e.View(table.Status{})
	require.Len(t, v.Rows, 2)

	texts := func(row table.Row) []string {
		out := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			out[i] = c.Text
		}
		return out
	}
	assert.Equal(t, "u1", v.Rows[0].ID)
	assert.Equal(t, []string{"grace", "Grace", "grace@test.cd", "Admin Owner, Teacher", "Yes", "2021-01-10", "2021-01-11 11:30"}, texts(v.Rows[0]))
	assert.Equal(t, "u2", v.Rows[1].ID)
	assert.Equal(t, []string{"ndog", table.EmptyCell, table.EmptyCell, table.EmptyCell, "No", "2021-01-10", "never"}, texts(v.Rows[1]))

	// null names, emails and roles never match
	e.Search("null")
	assert.Equal(t, 0, e.ResultCount())
	e.Search("grace@")
	assert.Equal(t, 1, e.ResultCount())

	// users who never logged in sort last either way
	e.Search("")
	require.True(t, e.SetSort(table.SortState{Key: "last_login", Direction: table.Descending}))
	assert.Equal(t, "u2", e.View(table.Status{}).Rows[1].ID)
}

func TestRecords_EmptyStringsSortLast(t *testing.T) {
	e, err := table.New(TableColumns())
	require.NoError(t, err)
	e.SetRecords(Records([]User{
		{ID: "1", Username: "nameless", Email: "nameless@test.cd"},
		{ID: "2", Name: "Bo", Email: "bo@test.cd"},
		{ID: "3", Name: "Al", Username: "al"},
	}))

	ids := func() []string {
		out := make([]string, 0, 3)
		for _, row := range e.View(table.Status{}).Rows {
			out = append(out, row.ID)
		}
		return out
	}
	require.True(t, e.ToggleSort("name"))
	assert.Equal(t, []string{"3", "2", "1"}, ids())
	require.True(t, e.ToggleSort("name"))
	assert.Equal(t, []string{"2", "3", "1"}, ids())

	require.True(t, e.ToggleSort("username"))
	assert.Equal(t, []string{"3", "1", "2"}, ids())
}
