// internal/coerce/coerce.go
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Scalar coercion for transform tags and caller-side casting.
 *
 * Null values and coercion failures are reported differently: nil input yields
 * Result{IsNull: true} with no error, an impossible conversion yields
 * ErrCoercionFailed. Callers decide what a null means for them.
 *
 * Kinds:
 *   - Text: lenient, every value renders (containers as JSON)
 *   - Int: numeric strings and numbers; "3.0" accepted, "3.5" rejected
 *   - Float: numeric strings and numbers
 *   - Bool: bools, numbers and the usual true/false spellings
 *   - Time: RFC3339 and the common date layouts understood by cast
 *   - List: sequences pass through, strings split on commas
 */

// Kind selects the target type of a coercion.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindList
)

// Result holds the coerced value or indicates null.
type Result struct {
	Value  any  // coerced value (valid only if !IsNull)
	IsNull bool // true if input was nil
}

// Coerce converts value to kind.
func Coerce(value any, kind Kind) (Result, error) {
	if value == nil {
		return Result{IsNull: true}, nil
	}

	switch kind {
	case KindText:
		return Result{Value: Text(value)}, nil
	case KindInt:
		return coerceInt(value)
	case KindFloat:
		return coerceFloat(value)
	case KindBool:
		return coerceBool(value)
	case KindTime:
		return coerceTime(value)
	case KindList:
		return Result{Value: List(value)}, nil
	default:
		return Result{}, types.ErrCoercionFailed
	}
}

// Text renders value as a string. Containers render as JSON.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case *dict.Dict, []any, map[string]any:
		b, err := dict.EncodeJSON(v)
		if err == nil {
			return string(b)
		}
	case time.Time:
		return v.Format(dict.TimeLayout)
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		b, jerr := json.Marshal(value)
		if jerr != nil {
			return cast.ToString(value)
		}
		return string(b)
	}
	return s
}

func coerceInt(value any) (Result, error) {
	if _, ok := value.(bool); ok {
		return Result{}, types.ErrCoercionFailed
	}
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		// base 10 first so "08" is 8, not an invalid octal literal
		if n, err := strconv.ParseInt(s, 10, 0); err == nil {
			return Result{Value: int(n)}, nil
		}
		value = s
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return Result{}, types.ErrCoercionFailed
	}
	return Result{Value: n}, nil
}

func coerceFloat(value any) (Result, error) {
	if _, ok := value.(bool); ok {
		return Result{}, types.ErrCoercionFailed
	}
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return Result{}, types.ErrCoercionFailed
	}
	return Result{Value: f}, nil
}

func coerceBool(value any) (Result, error) {
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "on":
			return Result{Value: true}, nil
		case "no", "n", "off", "":
			return Result{Value: false}, nil
		}
		value = strings.TrimSpace(s)
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return Result{}, types.ErrCoercionFailed
	}
	return Result{Value: b}, nil
}

func coerceTime(value any) (Result, error) {
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		return Result{}, types.ErrCoercionFailed
	}
	return Result{Value: t}, nil
}

// List converts value to a sequence. Strings split on commas with blanks dropped.
func List(value any) []any {
	switch v := dict.Normalize(value).(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case string:
		out := []any{}
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []any{v}
	}
}
