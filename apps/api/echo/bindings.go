package echoapi

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/table"
	"github.com/smartattendance/admin/core/user"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads the "name,-created_at" ordering query param.
func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = parseOrdering(ctx.QueryParam(orderingParam))
}

func parseOrdering(val string) []core.DBOrdering {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var orderings []core.DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// formatOrdering is the ordering param value of state.
func formatOrdering(state table.SortState) string {
	if !state.Active() {
		return ""
	}
	if state.Direction == table.Descending {
		return "-" + state.Key
	}
	return state.Key
}

// TableQuery carries a table's state between stateless requests.
// Search is kept verbatim; the table applies its own trimming rules.
// Only the first ordering field is the table sort.
type TableQuery struct {
	user.QueryFilter

	Ordering string `query:"ordering" validate:"omitempty,ordering"`
	Toggle   string `query:"toggle"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1"`
}

func (tq *TableQuery) Bind(ctx echo.Context, validate *validator.Validate) error {
	if err := ctx.Bind(tq); err != nil {
		return errors.Wrap(err, "binding to TableQuery")
	}
	tq.Ordering = strings.TrimSpace(tq.Ordering)
	tq.Toggle = strings.TrimSpace(tq.Toggle)
	return validate.Struct(tq)
}

// SortState is the table sort described by Ordering.
func (tq *TableQuery) SortState() table.SortState {
	orderings := parseOrdering(tq.Ordering)
	if len(orderings) == 0 {
		return table.SortState{}
	}
	state := table.SortState{Key: orderings[0].Field, Direction: table.Ascending}
	if !orderings[0].Ascending {
		state.Direction = table.Descending
	}
	return state
}
