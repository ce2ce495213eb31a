package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartattendance/admin/core"
)

func TestUser_Roles(t *testing.T) {
	tests := []struct {
		name                         string
		roles                        []string
		isAdmin, isTeacher, isStudent bool
		maxPriority                  int
	}{
		{name: "none"},
		{name: "student", roles: []string{RoleStudent}, isStudent: true, maxPriority: 1},
		{name: "teacher & student", roles: []string{RoleStudent, RoleTeacher}, isTeacher: true, isStudent: true, maxPriority: 11},
		{name: "owner", roles: []string{RoleAdminOwner}, isAdmin: true, maxPriority: 30},
		{name: "all", roles: AllRoles, isAdmin: true, isTeacher: true, isStudent: true, maxPriority: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Roles: tt.roles}
			assert.Equal(t, tt.isAdmin, usr.IsAdmin())
			assert.Equal(t, tt.isTeacher, usr.IsTeacher())
			assert.Equal(t, tt.isStudent, usr.IsStudent())
			assert.Equal(t, tt.maxPriority, MaxRolePriority(tt.roles))
		})
	}
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "Admin Principal", RoleName(RoleAdminPrincipal))
	assert.Equal(t, "janitor:", RoleName("janitor:"))
}

func TestUser_Password(t *testing.T) {
	var usr User
	if err := usr.SetPassword("Kin$hasa243"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	assert.NoError(t, usr.CheckPassword("Kin$hasa243"))
	assert.Error(t, usr.CheckPassword("kin$hasa243"))
}

func TestQueryFilter(t *testing.T) {
	var nilFilter *QueryFilter
	assert.True(t, nilFilter.IsEmpty())
	assert.True(t, (&QueryFilter{}).IsEmpty())

	qf := &QueryFilter{Search: "  al "}
	assert.False(t, qf.IsEmpty())
	qf.Clean()
	assert.Equal(t, "al", qf.Search)
}

func TestCleanOrdering(t *testing.T) {
	assert.Nil(t, CleanOrdering(nil))
	got := CleanOrdering([]core.DBOrdering{
		{Field: "name", Ascending: true},
		{Field: "password_hash"},
		{Field: "last_login"},
		{Field: "roles"},
	})
	assert.Equal(t, []core.DBOrdering{{Field: "name", Ascending: true}, {Field: "last_login"}}, got)
}
