package table

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		state SortState
		want  []string
	}{
		{name: "by age ascending, nulls last", state: SortState{Key: "age"}, want: []string{"Al", "Cy", "Bob"}},
		{name: "by age descending, nulls still last", state: SortState{Key: "age", Direction: Descending}, want: []string{"Al", "Cy", "Bob"}},
		{name: "by name ascending", state: SortState{Key: "name"}, want: []string{"Al", "Bob", "Cy"}},
		{name: "by name descending", state: SortState{Key: "name", Direction: Descending}, want: []string{"Cy", "Bob", "Al"}},
		{name: "unknown key keeps order", state: SortState{Key: "nope"}, want: []string{"Bob", "Al", "Cy"}},
		{name: "inactive keeps order", state: SortState{}, want: []string{"Bob", "Al", "Cy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(nameAgeRecords(), tt.state)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSort_Values(t *testing.T) {
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	strp := func(s string) *string { return &s }

	tests := []struct {
		name   string
		values []interface{}
		want   []string
	}{
		{name: "mixed numbers", values: []interface{}{10.5, 2, int64(3), uint8(1), json.Number("2.5")}, want: []string{"1", "2", "2.5", "3", "10.5"}},
		{name: "strings by byte order", values: []interface{}{"b", "B", "a"}, want: []string{"B", "a", "b"}},
		{name: "bools", values: []interface{}{true, false, true}, want: []string{"false", "true", "true"}},
		{name: "times", values: []interface{}{day, day.Add(-time.Hour), day.Add(time.Hour)}, want: []string{
			day.Add(-time.Hour).String(), day.String(), day.Add(time.Hour).String(),
		}},
		{name: "null types unwrap", values: []interface{}{null.IntFrom(5), null.Int{}, null.IntFrom(2)}, want: []string{"2", "5", ""}},
		{name: "pointers deref", values: []interface{}{strp("y"), (*string)(nil), strp("x")}, want: []string{"x", "y", ""}},
		{name: "mixed kinds by rank", values: []interface{}{"10", true, 9, day, 10}, want: []string{"9", "10", "true", day.String(), "10"}},
		{name: "NaN last", values: []interface{}{3.0, math.NaN(), 1, math.NaN()}, want: []string{"1", "3", "NaN", "NaN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, len(tt.values))
			for i, v := range tt.values {
				records[i] = Record{"v": v}
			}
			got := Sort(records, SortState{Key: "v"})
			out := make([]string, len(got))
			for i, rec := range got {
				out[i] = DisplayString(rec.Value("v"))
			}
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSort_NullsLastBothDirections(t *testing.T) {
	records := []Record{
		{"id": 1, "v": nil},
		{"id": 2, "v": 3},
		{"id": 3},
		{"id": 4, "v": 1},
		{"id": 5, "v": null.Float64{}},
	}
	for _, dir := range []Direction{Ascending, Descending} {
		got := Sort(records, SortState{Key: "v", Direction: dir})
		require.Len(t, got, 5)
		for _, rec := range got[:2] {
			assert.NotNil(t, rec.Value("v"), dir.String())
		}
		// nulls keep their relative order
		ids := []interface{}{got[2]["id"], got[3]["id"], got[4]["id"]}
		assert.Equal(t, []interface{}{1, 3, 5}, ids, dir.String())
	}
}

func TestSort_StableAndIdempotent(t *testing.T) {
	records := make([]Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, Record{"id": i, "group": i % 3})
	}
	state := SortState{Key: "group", Direction: Descending}

	once := Sort(records, state)
	twice := Sort(once, state)
	assert.Equal(t, once, twice)

	for i := 1; i < len(once); i++ {
		if once[i-1]["group"] == once[i]["group"] {
			assert.Less(t, once[i-1]["id"].(int), once[i]["id"].(int), "equal keys must keep input order")
		}
	}
}

func TestSort_InactiveReturnsInput(t *testing.T) {
	records := nameAgeRecords()
	got := Sort(records, SortState{})
	require.Len(t, got, 3)
	assert.Same(t, &records[0], &got[0])
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := nameAgeRecords()
	_ = Sort(records, SortState{Key: "name"})
	assert.Equal(t, []string{"Bob", "Al", "Cy"}, names(records))
}

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	assert.False(t, s.Active())

	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: Ascending}, s)

	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: Descending}, s)

	s = s.Toggle("age")
	assert.Equal(t, SortState{Key: "age", Direction: Ascending}, s, "new column starts ascending")

	s = s.Toggle("age").Toggle("age")
	assert.False(t, s.Active())
}

func TestDirection_Text(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "", want: Ascending},
		{in: "asc", want: Ascending},
		{in: "ascending", want: Ascending},
		{in: "desc", want: Descending},
		{in: "descending", want: Descending},
		{in: "up", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Direction
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}

	data, err := json.Marshal(SortState{Key: "age", Direction: Descending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"age","direction":"descending"}`, string(data))
}

func Test_compareValues_Transitive(t *testing.T) {
	values := []interface{}{9, 10, "10", "9", true, false, "", math.NaN(), json.Number("9.5"), time.Unix(0, 0)}
	for _, a := range values {
		for _, b := range values {
			if ab, ba := compareValues(a, b), compareValues(b, a); (ab < 0) != (ba > 0) || (ab == 0) != (ba == 0) {
				t.Errorf("failed! compareValues(%v, %v) = %d; compareValues(%v, %v) = %d", a, b, ab, b, a, ba)
			}
			for _, c := range values {
				if compareValues(a, b) < 0 && compareValues(b, c) < 0 && compareValues(a, c) >= 0 {
					t.Errorf("failed! %v < %v < %v but compareValues(%v, %v) >= 0", a, b, c, a, c)
				}
			}
		}
	}
}
