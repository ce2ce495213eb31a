package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("integrity issue")
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "querying users")))
	assert.False(t, IsShutdown(errors.New("integrity issue")))
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "wrapped error", err: NewValidationError(errors.New("bad")), want: "bad"},
		{name: "one field", err: NewValidationError(nil, FieldError{Field: "email", Error: "taken"}), want: "email: taken"},
		{
			name: "fields sorted, first message kept",
			err: NewValidationError(nil,
				FieldError{Field: "toggle", Error: "cannot sort"},
				FieldError{Field: "email", Error: "taken"},
				FieldError{Field: "toggle", Error: "again"},
			),
			want: "email: taken; toggle: cannot sort",
		},
		{name: "field error", err: NewFieldError("ordering", "cannot sort on %q", "roles"), want: `ordering: cannot sort on "roles"`},
		{name: "empty", err: NewValidationError(nil), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("failed! Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestFieldMessages(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)

	type signup struct {
		Name string `json:"name" validate:"required"`
	}
	vErr := validate.Struct(signup{})

	tests := []struct {
		name   string
		err    error
		want   map[string]string
		wantOk bool
	}{
		{name: "validator errors", err: errors.Wrap(vErr, "validating"), want: map[string]string{"name": "this field is required"}, wantOk: true},
		{name: "field errors", err: NewFieldError("page", "no page %d", 9), want: map[string]string{"page": "no page 9"}, wantOk: true},
		{name: "validation error without fields", err: NewValidationError(errors.New("bad"))},
		{name: "other error", err: errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FieldMessages(tt.err, translator)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
