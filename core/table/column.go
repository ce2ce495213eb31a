package table

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Align is a column's horizontal alignment hint.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RenderFunc formats a cell from its value and the whole record. The value
// is normalized as by Record.Value: nil for missing or null fields.
type RenderFunc func(value interface{}, rec Record) string

// Column describes how one record field is labeled, sorted and rendered.
type Column struct {
	Key      string     `json:"key" validate:"required"`
	Header   string     `json:"header"`
	Sortable *bool      `json:"sortable,omitempty"` // nil means sortable
	Render   RenderFunc `json:"-"`
	Width    string     `json:"width,omitempty"`
	Align    Align      `json:"align,omitempty" validate:"omitempty,oneof=left center right"`
}

// IsSortable reports whether the column's header may toggle the sort.
func (c Column) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// Alignment returns the column's alignment, defaulting to AlignLeft.
func (c Column) Alignment() Align {
	if c.Align == "" {
		return AlignLeft
	}
	return c.Align
}

// Unsortable is a helper for Column.Sortable.
func Unsortable() *bool {
	b := false
	return &b
}

type columnSet struct {
	Columns []Column `validate:"unique=Key,dive"`
}

var validate = validator.New()

// ValidateColumns checks that every column has a key, keys are unique and
// alignments are known.
func ValidateColumns(columns []Column) error {
	if err := validate.Struct(columnSet{Columns: columns}); err != nil {
		return errors.Wrap(err, "validating columns")
	}
	return nil
}
