package table

import (
	"sort"

	"github.com/pkg/errors"
)

// Direction of the active sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ascending", "asc", "":
		*d = Ascending
	case "descending", "desc":
		*d = Descending
	default:
		return errors.Errorf("unknown sort direction %q", text)
	}
	return nil
}

// SortState is the single active sort column. An empty Key means unsorted.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool { return s.Key != "" }

// Toggle returns the next state after activating the header of key:
// the active column cycles ascending -> descending -> unsorted,
// any other column starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key != key {
		return SortState{Key: key, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{}
}

// Sort returns records stably ordered by state. Null values always sort
// last in both directions. An inactive state returns the input slice itself.
func Sort(records []Record, state SortState) []Record {
	if !state.Active() {
		return records
	}

	// normalize once; keys are read on every comparison
	keys := make([]interface{}, len(records))
	idx := make([]int, len(records))
	for i, rec := range records {
		keys[i] = rec.Value(state.Key)
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		cmp := compareValues(a, b)
		if state.Direction == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})

	sorted := make([]Record, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	return sorted
}
