package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
)

func TestWhereClause(t *testing.T) {
	active := false
	tests := []struct {
		name     string
		filter   *user.QueryFilter
		want     string
		wantArgs []interface{}
	}{
		{name: "nil"},
		{name: "empty", filter: &user.QueryFilter{}},
		{
			name:     "search",
			filter:   &user.QueryFilter{Search: "50%_off"},
			want:     " WHERE (name ILIKE ? OR username ILIKE ? OR email ILIKE ?)",
			wantArgs: []interface{}{`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`},
		},
		{
			name:     "roles",
			filter:   &user.QueryFilter{Roles: []string{"admin", "teacher"}},
			want:     " WHERE EXISTS (SELECT 1 FROM UNNEST(roles) AS r WHERE r ILIKE ? OR r ILIKE ?)",
			wantArgs: []interface{}{"admin%", "teacher%"},
		},
		{
			name:     "all",
			filter:   &user.QueryFilter{Search: "jo", Roles: []string{"student"}, IsActive: &active},
			want:     " WHERE (name ILIKE ? OR username ILIKE ? OR email ILIKE ?) AND EXISTS (SELECT 1 FROM UNNEST(roles) AS r WHERE r ILIKE ?) AND is_active = ?",
			wantArgs: []interface{}{"%jo%", "%jo%", "%jo%", "student%", false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := whereClause(tt.filter)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     string
	}{
		{name: "default", want: " ORDER BY created_at DESC, id ASC"},
		{
			name:     "name asc",
			ordering: []core.DBOrdering{{Field: "name", Ascending: true}},
			want:     " ORDER BY name ASC NULLS LAST, created_at DESC, id ASC",
		},
		{
			name:     "created_at replaces default",
			ordering: []core.DBOrdering{{Field: "created_at", Ascending: true}},
			want:     " ORDER BY created_at ASC NULLS LAST, id ASC",
		},
		{
			name:     "unknown and duplicate fields skipped",
			ordering: []core.DBOrdering{{Field: "password_hash"}, {Field: "last_login"}, {Field: "last_login", Ascending: true}, {Field: "1; DROP TABLE user"}},
			want:     " ORDER BY last_login DESC NULLS LAST, created_at DESC, id ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.ordering); got != tt.want {
				t.Errorf("failed! orderClause() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestLimitClause(t *testing.T) {
	got, args := limitClause(nil)
	assert.Equal(t, "", got)
	assert.Nil(t, args)

	got, args = limitClause(&core.DBPage{})
	assert.Equal(t, "", got)
	assert.Nil(t, args)

	got, args = limitClause(core.NewDBPage(3, 10))
	assert.Equal(t, " LIMIT ? OFFSET ?", got)
	assert.Equal(t, []interface{}{10, 20}, args)
}

func TestUserRow(t *testing.T) {
	usr := user.User{ID: "id", Username: "awe", IsActive: true}
	row := toRow(usr)
	assert.False(t, row.Name.Valid)
	assert.False(t, row.Email.Valid)
	assert.True(t, row.Username.Valid)
	assert.False(t, row.LastLogin.Valid)
	assert.NotNil(t, row.Roles)

	back := row.toUser()
	assert.Equal(t, "awe", back.Username)
	assert.Nil(t, back.Roles)
	assert.Nil(t, back.LastLogin)
}
