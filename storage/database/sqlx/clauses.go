package sqlxrepos

import (
	"strings"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause builds the WHERE clause of filter with `?` bind vars.
// It returns an empty clause when the filter is empty.
func whereClause(filter *user.QueryFilter) (string, []interface{}) {
	if filter.IsEmpty() {
		return "", nil
	}

	var (
		conds []string
		args  []interface{}
	)
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		conds = append(conds, "(name ILIKE ? OR username ILIKE ? OR email ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if len(filter.Roles) > 0 {
		likes := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			likes = append(likes, "r ILIKE ?")
			args = append(args, likeEscaper.Replace(role)+"%")
		}
		conds = append(conds, "EXISTS (SELECT 1 FROM UNNEST(roles) AS r WHERE "+strings.Join(likes, " OR ")+")")
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders ordering followed by the default created_at DESC, id ASC tie-breakers.
// Unknown fields are skipped and nulls always sort last.
func orderClause(ordering []core.DBOrdering) string {
	terms := make([]string, 0, len(ordering)+2)
	seen := make(map[string]bool, len(ordering)+2)
	for _, ord := range ordering {
		if seen[ord.Field] || !isOrderingField(ord.Field) {
			continue
		}
		seen[ord.Field] = true
		terms = append(terms, ord.String()+" NULLS LAST")
	}
	if !seen["created_at"] {
		terms = append(terms, "created_at DESC")
	}
	terms = append(terms, "id ASC")
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isOrderingField(field string) bool {
	for _, fld := range user.OrderingFields {
		if fld == field {
			return true
		}
	}
	return false
}

// limitClause renders the page window; a nil page or a zero limit selects everything.
func limitClause(page *core.DBPage) (string, []interface{}) {
	if page == nil || page.Limit <= 0 {
		return "", nil
	}
	return " LIMIT ? OFFSET ?", []interface{}{page.Limit, page.Offset}
}
