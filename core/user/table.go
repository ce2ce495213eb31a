package user

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/smartattendance/admin/core/table"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// TableColumns are the columns of the users admin table.
// Sortable column keys are also OrderingFields so hosts may push the sort down to the repository.
func TableColumns() []table.Column {
	return []table.Column{
		{Key: "username", Header: "Username", Width: "15%"},
		{Key: "name", Header: "Name", Width: "20%"},
		{Key: "email", Header: "Email", Width: "25%"},
		{Key: "roles", Header: "Roles", Sortable: table.Unsortable(), Render: renderRoles},
		{Key: "is_active", Header: "Active", Align: table.AlignCenter, Render: renderActive},
		{Key: "created_at", Header: "Joined", Align: table.AlignRight, Render: renderTime(dateLayout, "")},
		{Key: "last_login", Header: "Last login", Align: table.AlignRight, Render: renderTime(dateTimeLayout, "never")},
	}
}

// Records maps users to table records keyed like TableColumns.
// Empty usernames, names and emails are null, so they never match a search
// and sort last like the repositories do.
func Records(users []User) []table.Record {
	records := make([]table.Record, 0, len(users))
	for _, usr := range users {
		var roles interface{}
		if len(usr.Roles) > 0 {
			roles = usr.Roles
		}
		records = append(records, table.Record{
			"id":         usr.ID,
			"username":   null.NewString(usr.Username, usr.Username != ""),
			"name":       null.NewString(usr.Name, usr.Name != ""),
			"email":      null.NewString(usr.Email, usr.Email != ""),
			"roles":      roles,
			"is_active":  usr.IsActive,
			"created_at": usr.CreatedAt,
			"last_login": usr.LastLogin,
		})
	}
	return records
}

func renderRoles(v interface{}, _ table.Record) string {
	roles, _ := v.([]string)
	if len(roles) == 0 {
		return table.EmptyCell
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, RoleName(role))
	}
	return strings.Join(names, ", ")
}

func renderActive(v interface{}, _ table.Record) string {
	if active, _ := v.(bool); active {
		return "Yes"
	}
	return "No"
}

func renderTime(layout, fallback string) table.RenderFunc {
	return func(v interface{}, _ table.Record) string {
		t, ok := v.(time.Time)
		if !ok || t.IsZero() {
			if fallback == "" {
				return table.EmptyCell
			}
			return fallback
		}
		return t.UTC().Format(layout)
	}
}
