package core

import (
	"fmt"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field or query param.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldError returns a validation error on the single field.
func NewFieldError(field, format string, args ...interface{}) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: fmt.Sprintf(format, args...)}}}
}

// FieldMap returns the field errors keyed by field, or nil when there are none.
// A field reported twice keeps its first message.
func (err ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	fields := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		if _, seen := fields[fErr.Field]; !seen {
			fields[fErr.Field] = fErr.Error
		}
	}
	return fields
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return JoinFields(err.FieldMap())
	}
	return err.Err.Error()
}

// FieldMessages returns the per-field messages err carries: translated validator
// errors or the fields of a *ValidationError. ok is false for any other error.
func FieldMessages(err error, translator ut.Translator) (fields map[string]string, ok bool) {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		return TranslateErrors(origErr, translator), true
	case *ValidationError:
		fields = origErr.FieldMap()
		return fields, fields != nil
	}
	return nil, false
}

// JoinFields formats fields as "field: message; ..." sorted by field.
func JoinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

type shutdown struct {
	message string
}

// NewShutdownError returns an error that makes the API server shut down gracefully once handled.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
