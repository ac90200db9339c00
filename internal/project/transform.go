// internal/project/transform.go
package project

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/solatis/slovar/internal/coerce"
	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Named value transforms for Extract.
 *
 * Transforms are looked up by name in a TransformRegistry; there is no
 * reflection-based method lookup. A name that is not registered, or a
 * registered transform handed a value type it does not support, fails with
 * ErrTransform naming both the transform and the value type.
 *
 * Built-ins:
 *   - str, unicode: render as string
 *   - int, float: numeric cast, falsy values pass through unchanged
 *   - flat: flatten a map value, other values pass through
 *   - dt: parse as time.Time
 *   - bool, len, uuid
 *   - lower, upper, strip, lstrip, rstrip, title, capitalize, swapcase (strings)
 */

// TransformFunc converts one value.
type TransformFunc func(value any) (any, error)

// TransformRegistry maps transform names to functions.
type TransformRegistry struct {
	funcs map[string]TransformFunc
}

// NewTransformRegistry returns an empty registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{funcs: make(map[string]TransformFunc)}
}

// DefaultTransforms returns a registry holding the built-in transforms.
func DefaultTransforms() *TransformRegistry {
	r := NewTransformRegistry()
	r.Register("str", toText)
	r.Register("unicode", toText)
	r.Register("int", castIfTruthy("int", coerce.KindInt))
	r.Register("float", castIfTruthy("float", coerce.KindFloat))
	r.Register("flat", toFlat)
	r.Register("dt", toTime)
	r.Register("bool", toBool)
	r.Register("len", length)
	r.Register("uuid", canonicalUUID)

	r.Register("lower", stringFunc("lower", strings.ToLower))
	r.Register("upper", stringFunc("upper", strings.ToUpper))
	r.Register("strip", stringFunc("strip", strings.TrimSpace))
	r.Register("lstrip", stringFunc("lstrip", func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }))
	r.Register("rstrip", stringFunc("rstrip", func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }))
	r.Register("title", stringFunc("title", titleCase))
	r.Register("capitalize", stringFunc("capitalize", capitalize))
	r.Register("swapcase", stringFunc("swapcase", swapCase))
	return r
}

// Register adds or replaces a transform.
func (r *TransformRegistry) Register(name string, fn TransformFunc) {
	r.funcs[name] = fn
}

// Lookup returns the transform registered under name.
func (r *TransformRegistry) Lookup(name string) (TransformFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Apply runs the named transform on value.
func (r *TransformRegistry) Apply(name string, value any) (any, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty transform name", types.ErrInvalidConfiguration)
	}
	fn, ok := r.funcs[name]
	if !ok {
		return nil, unsupported(name, value)
	}
	return fn(value)
}

func unsupported(name string, value any) error {
	return fmt.Errorf("%w: type `%T` does not have a method `%s`", types.ErrTransform, value, name)
}

func toText(value any) (any, error) {
	return coerce.Text(value), nil
}

// castIfTruthy converts truthy values to kind and leaves falsy ones alone.
func castIfTruthy(name string, kind coerce.Kind) TransformFunc {
	return func(value any) (any, error) {
		if !dict.Truthy(value) {
			return value, nil
		}
		res, err := coerce.Coerce(value, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot apply `%s` to %T %v", types.ErrTransform, name, value, value)
		}
		return res.Value, nil
	}
}

func toFlat(value any) (any, error) {
	if m, ok := value.(*dict.Dict); ok {
		return flat.Flatten(m, true), nil
	}
	return value, nil
}

func toTime(value any) (any, error) {
	res, err := coerce.Coerce(value, coerce.KindTime)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse %v as a datetime", types.ErrTransform, value)
	}
	if res.IsNull {
		return nil, nil
	}
	return res.Value, nil
}

func toBool(value any) (any, error) {
	res, err := coerce.Coerce(value, coerce.KindBool)
	if err != nil {
		return nil, unsupported("bool", value)
	}
	if res.IsNull {
		return false, nil
	}
	return res.Value, nil
}

func length(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case []any:
		return len(v), nil
	case *dict.Dict:
		return v.Len(), nil
	default:
		return nil, unsupported("len", value)
	}
}

func canonicalUUID(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, unsupported("uuid", value)
	}
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a UUID: %v", types.ErrTransform, s, err)
	}
	return u.String(), nil
}

// stringFunc adapts a string function, rejecting non-string values.
func stringFunc(name string, fn func(string) string) TransformFunc {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, unsupported(name, value)
		}
		return fn(s), nil
	}
}

// titleCase builds a Caser per call; Casers keep state and are not shareable.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
