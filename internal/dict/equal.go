// internal/dict/equal.go
package dict

import (
	"reflect"
	"time"
)

/*
 * Node equality and truthiness.
 *
 * Equal compares nodes structurally. Numbers compare by value across int,
 * int64 and float64 so JSON-decoded data (float64) equals Go literals (int).
 * Dict comparison ignores key order; sequences compare element-wise.
 *
 * Truthy mirrors the falsy set used by unflatten placeholders and the int/float
 * transforms: nil, false, zero numbers, "" and empty containers are falsy.
 */

// Equal reports whether a and b are structurally equal nodes.
// Native maps and slices on either side are normalized first.
func Equal(a, b any) bool {
	a, b = normalizeNative(a), normalizeNative(b)
	if na, nb, ok := asNumbers(a, b); ok {
		return na == nb
	}
	switch x := a.(type) {
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			yv, ok := y.Get(k)
			if !ok || !Equal(x.Value(k), yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// normalizeNative converts native containers; nodes pass through.
func normalizeNative(v any) any {
	switch v.(type) {
	case map[string]any, map[string]string, []map[string]any, []*Dict, []string, []int, []float64:
		return Normalize(v)
	}
	return v
}

// Truthy reports whether v is non-empty in the usual dynamic-language sense.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case *Dict:
		return t.Len() > 0
	case []any:
		return len(t) > 0
	case time.Time:
		return !t.IsZero()
	}
	if n, ok := toFloat64(v); ok {
		return n != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

// asNumbers converts both values to float64 when both are numeric.
func asNumbers(a, b any) (float64, float64, bool) {
	na, oka := toFloat64(a)
	nb, okb := toFloat64(b)
	return na, nb, oka && okb
}

// toFloat64 converts Go numeric kinds to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
