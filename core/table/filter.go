package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter returns, in original order, the records for which at least one
// column's raw value contains query as a case-insensitive substring.
// Null values never match. When the trimmed query is empty the input slice
// itself is returned, not a copy.
func Filter(records []Record, query string, columns []Column) []Record {
	if strings.TrimSpace(query) == "" {
		return records
	}

	lower := cases.Lower(language.Und)
	q := lower.String(query)

	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, q, columns, lower) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func matches(rec Record, q string, columns []Column, lower cases.Caser) bool {
	for _, col := range columns {
		v := rec.Value(col.Key)
		if v == nil {
			continue
		}
		if strings.Contains(lower.String(DisplayString(v)), q) {
			return true
		}
	}
	return false
}
