package table

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"
)

// kind ranks of comparable values; values of different ranks order by rank
const (
	rankNumber = iota
	rankBool
	rankTime
	rankText
)

func rankOf(v interface{}) int {
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	switch v.(type) {
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	}
	return rankText
}

// compareValues is a three-way comparison of two normalized, non-nil values.
// Numbers sort before bools, bools before times and times before everything
// else. Within a rank, numbers compare numerically (NaN last), bools
// false < true, times chronologically and the rest by display string.
func compareValues(a, b interface{}) int {
	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case rankNumber:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return compareFloats(af, bf)
	case rankBool:
		av, bv := a.(bool), b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case rankTime:
		av, bv := a.(time.Time), b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(DisplayString(a), DisplayString(b))
}

// compareFloats orders NaN after every other number; NaNs are equal.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v interface{}) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
