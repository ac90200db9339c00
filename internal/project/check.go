// internal/project/check.go
package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/types"
)

// Value kinds accepted by HasOptions.Kind.
const (
	KindAny    = ""
	KindString = "string"
	KindNumber = "number"
	KindBool   = "bool"
	KindTime   = "time"
	KindMap    = "map"
	KindList   = "list"
)

// HasOptions controls Has.
type HasOptions struct {
	// Kind the present values must have; KindAny skips the check.
	Kind string
	// Any passes as long as at least one key is valid.
	Any bool
	// AllowMissing accepts absent keys.
	AllowMissing bool
	// AllowedValues restricts present values when non-empty.
	AllowedValues []any
	// Message replaces each error text; "%s" inside it is replaced by the
	// original text.
	Message string
}

// Has checks that keys (top-level or dotted) are present in d with the
// expected kind and values. All problems are reported together.
func Has(d *dict.Dict, keys []string, opts HasOptions) error {
	if !slices.Contains([]string{KindAny, KindString, KindNumber, KindBool, KindTime, KindMap, KindList}, opts.Kind) {
		return fmt.Errorf("%w: unknown kind %q", types.ErrInvalidConfiguration, opts.Kind)
	}

	view := flat.Flatten(d, true)
	view.Update(d)

	var errs []error
	report := func(sentinel error, msg string) {
		if opts.Message != "" {
			msg = strings.ReplaceAll(opts.Message, "%s", msg)
		}
		errs = append(errs, fmt.Errorf("%w: %s", sentinel, msg))
	}

	for _, key := range keys {
		v, ok := view.Get(key)
		if !ok {
			switch {
			case opts.AllowMissing:
			case len(opts.AllowedValues) > 0:
				report(types.ErrMissingKey, notAllowed(key, opts))
			default:
				report(types.ErrMissingKey, fmt.Sprintf("missing key `%s`", key))
			}
			continue
		}
		if !hasKind(v, opts.Kind) {
			report(types.ErrInvalidValue, fmt.Sprintf("`%s` must be type `%s`, got `%T` instead", key, opts.Kind, v))
		}
		if len(opts.AllowedValues) > 0 && !slices.ContainsFunc(opts.AllowedValues, func(a any) bool { return dict.Equal(a, v) }) {
			report(types.ErrInvalidValue, notAllowed(key, opts))
		}
	}

	if len(errs) == 0 || (opts.Any && len(errs) < len(keys)) {
		return nil
	}
	return errors.Join(errs...)
}

func notAllowed(key string, opts HasOptions) string {
	allowed := opts.AllowedValues
	if opts.Kind == KindMap {
		allowed = make([]any, len(opts.AllowedValues))
		for i, a := range opts.AllowedValues {
			allowed[i] = fmt.Sprintf("%s.%v", key, a)
		}
	}
	return fmt.Sprintf("missing key or invalid value for `%s`, allowed values are %v", key, allowed)
}

func hasKind(v any, kind string) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindNumber:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTime:
		_, ok := v.(time.Time)
		return ok
	case KindMap:
		_, ok := v.(*dict.Dict)
		return ok
	case KindList:
		_, ok := v.([]any)
		return ok
	default:
		return true
	}
}

// Contains reports whether d holds every entry of other, ignoring exclude.
func Contains(d, other *dict.Dict, exclude []string) (bool, error) {
	probe, err := Subset(other, nil, exclude)
	if err != nil {
		return false, err
	}
	if probe.Len() == 0 {
		return true, nil
	}
	got, err := Subset(d, probe.Keys(), nil)
	if err != nil {
		return false, err
	}
	return dict.Equal(got, probe), nil
}

// Sensor redacts every flat leaf whose key ends with one of patterns.
func Sensor(d *dict.Dict, patterns []string) (*dict.Dict, error) {
	view := flat.Flatten(d, true)
	for _, key := range view.Keys() {
		for _, p := range patterns {
			if p != "" && strings.HasSuffix(key, p) {
				view.Set(key, types.Redacted)
				break
			}
		}
	}
	return flat.Unflatten(view)
}
