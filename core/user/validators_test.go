package user_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
	testutil "github.com/smartattendance/admin/tests"
)

func TestNewUser_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	valid := func() user.NewUser {
		return user.NewUser{
			Name:            "Grace Mbuyi",
			Username:        "gmbuyi",
			Email:           "grace@test.cd",
			Password:        "Zq9!vT4#xL",
			PasswordConfirm: "Zq9!vT4#xL",
			Roles:           []string{user.RoleTeacher},
		}
	}
	with := func(change func(nu *user.NewUser)) user.NewUser {
		nu := valid()
		change(&nu)
		return nu
	}
	pwd := func(p string) user.NewUser {
		return with(func(nu *user.NewUser) { nu.Password, nu.PasswordConfirm = p, p })
	}

	tests := []struct {
		name    string
		data    user.NewUser
		wantErr map[string]string
	}{
		{name: "valid", data: valid()},
		{name: "email only", data: with(func(nu *user.NewUser) { nu.Username = "" })},
		{name: "cleaned", data: with(func(nu *user.NewUser) { nu.Username = "  GMbuyi "; nu.Email = " Grace@Test.CD" })},
		{name: "name required", data: with(func(nu *user.NewUser) { nu.Name = " " }), wantErr: map[string]string{"name": "this field is required"}},
		{
			name: "username or email",
			data: with(func(nu *user.NewUser) { nu.Username, nu.Email = "", "" }),
			wantErr: map[string]string{
				"username": "one of username or email is required",
				"email":    "one of username or email is required",
			},
		},
		{
			name:    "bad username",
			data:    with(func(nu *user.NewUser) { nu.Username = "g.mbuyi" }),
			wantErr: map[string]string{"username": "only alphanumeric characters and underscores are allowed"},
		},
		{name: "bad roles", data: with(func(nu *user.NewUser) { nu.Roles = []string{"janitor:"} }), wantErr: map[string]string{"roles": "invalid roles"}},
		{
			name:    "confirm mismatch",
			data:    with(func(nu *user.NewUser) { nu.PasswordConfirm = "nope" }),
			wantErr: map[string]string{"password_confirm": "password_confirm must be equal to Password"},
		},
		{name: "short password", data: pwd("Zq9!v"), wantErr: map[string]string{"password": "password must contain at least 8 characters"}},
		{name: "whitespace", data: pwd("Zq9! vT4#xL"), wantErr: map[string]string{"password": "password must not contain whitespace"}},
		{name: "all numeric", data: pwd("2439901234"), wantErr: map[string]string{"password": "password cannot be entirely numeric"}},
		{
			name:    "not complex",
			data:    pwd("zq9vt4xlmw"),
			wantErr: map[string]string{"password": "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character"},
		},
		{name: "similar to username", data: pwd("Gmbuyi#1"), wantErr: map[string]string{"password": "password cannot be similar to user attributes"}},
		{name: "common", data: pwd("P@ssw0rd"), wantErr: map[string]string{"password": "password is too common"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := tt.data
			err := nu.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Equal(t, tt.wantErr, core.TranslateErrors(vErrs, translator))
		})
	}
}
