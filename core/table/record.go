package table

import (
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// idField is the record field used as the row identity when present.
const idField = "id"

// Record is one row's worth of field values, keyed by field name.
// The engine never mutates records.
type Record map[string]interface{}

// Value returns the normalized value stored under key, or nil when it is
// missing or null (see normalize).
func (r Record) Value(key string) interface{} {
	v, ok := r[key]
	if !ok {
		return nil
	}
	return normalize(v)
}

// ID returns the display string of the "id" field, or the positional index
// when the record has no id.
func (r Record) ID(index int) string {
	if id := r.Value(idField); id != nil {
		return DisplayString(id)
	}
	return strconv.Itoa(index)
}

// normalize unwraps driver.Valuer implementations (null.String, sql.NullInt64..)
// and pointers. A nil pointer, a nil Valuer result or a Valuer error is null.
func normalize(v interface{}) interface{} {
	for i := 0; v != nil && i < 8; i++ {
		if valuer, ok := v.(driver.Valuer); ok {
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Ptr && rv.IsNil() {
				return nil
			}
			val, err := valuer.Value()
			if err != nil {
				return nil
			}
			if _, again := val.(driver.Valuer); !again {
				return derefPtr(val)
			}
			v = val
			continue
		}
		return derefPtr(v)
	}
	return v
}

// derefPtr follows pointers to their value, stopping at a pointer whose
// String, Error or MarshalText method is lost once dereferenced (*big.Int, *url.URL..).
func derefPtr(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		if hasTextMethod(rv.Type()) && !hasTextMethod(rv.Type().Elem()) {
			return rv.Interface()
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

var (
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func hasTextMethod(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType) || t.Implements(textMarshalerType)
}

// DisplayString is the default string form of a value: the form used for
// search matching and for cells without a RenderFunc. Null is "".
// Numbers use their shortest decimal form and time.Time its String form;
// locale formatting is never applied.
func DisplayString(v interface{}) string {
	v = normalize(v)
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case time.Time:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	case encoding.TextMarshaler:
		if text, err := val.MarshalText(); err == nil {
			return string(text)
		}
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}
