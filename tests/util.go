package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/smartattendance/admin/core/user"
)

// CreateUser stores a user straight through repo, bypassing validation.
// lastLogin, when given, follows createdAt.
func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	times ...time.Time, // createdAt, lastLogin
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(times) > 0 {
		tstamp = times[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if len(times) > 1 {
		lastLogin := times[1].UTC()
		usr.LastLogin = &lastLogin
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// NewValidator returns a validator and translator with every app validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	return user.NewValidator()
}
