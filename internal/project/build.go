// internal/project/build.go
package project

import (
	"fmt"
	"strings"

	"github.com/solatis/slovar/internal/coerce"
	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/merge"
	"github.com/solatis/slovar/internal/types"
)

// BuildOptions controls BuildFrom.
type BuildOptions struct {
	// SkipEmpty drops targets whose source value is the empty string.
	SkipEmpty bool
	// AllowMissing stores the source path itself when it is absent,
	// instead of failing with ErrMissingKey.
	AllowMissing bool
	// Inverse reads rules as {target: source}.
	Inverse bool
}

// BuildFrom builds a new structure from source following rules, a mapping of
// source path to target path. An empty target means "same as source". A
// source path ending in "." selects the whole subtree below it.
func BuildFrom(source, rules *dict.Dict, opts BuildOptions) (*dict.Dict, error) {
	flatSrc := flat.Flatten(source, true)
	flatSrc.Update(source)

	out := dict.New()
	var err error
	flat.Flatten(rules, true).Range(func(from string, rule any) bool {
		to := from
		if dict.Truthy(rule) {
			to = coerce.Text(rule)
		}
		if opts.Inverse {
			from, to = to, from
		}

		var value any
		if strings.HasSuffix(from, types.Separator) {
			if value, err = GetTree(flatSrc, from, nil); err != nil {
				return false
			}
		} else if v, ok := flatSrc.Get(from); ok {
			value = v
		} else if opts.AllowMissing {
			value = from
		} else {
			err = fmt.Errorf("%w: %s", types.ErrMissingKey, from)
			return false
		}

		if s, isStr := value.(string); isStr && s == "" && opts.SkipEmpty {
			return true
		}
		out.Set(to, dict.DeepCopy(value))
		return true
	})
	if err != nil {
		return nil, err
	}
	return flat.Unflatten(out)
}

// Transform moves flat leaves of d to new dotted paths. Leaves without a rule
// are dropped.
func Transform(d *dict.Dict, rules map[string]string) (*dict.Dict, error) {
	out := dict.New()
	var err error
	flat.Flatten(d, true).Range(func(path string, value any) bool {
		target, ok := rules[path]
		if !ok {
			return true
		}
		var m *dict.Dict
		if m, err = rootMap(target, value); err != nil {
			return false
		}
		merge.RecursiveMerge(out, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetDefault stores value at path unless the path already holds a leaf.
// It returns the value the path holds afterwards.
func SetDefault(d *dict.Dict, path string, value any) (any, error) {
	if v, ok := Fget(d, path); ok {
		return v, nil
	}
	m, err := rootMap(path, value)
	if err != nil {
		return nil, err
	}
	merge.RecursiveMerge(d, m)
	v, _ := d.Lookup(path)
	return v, nil
}

// Fget looks key up in the flat view of d (sequences kept as leaves).
func Fget(d *dict.Dict, key string) (any, bool) {
	return flat.Flatten(d, true).Get(key)
}

// rootMap builds the map holding value at path; a leading index is a conflict.
func rootMap(path string, value any) (*dict.Dict, error) {
	node, err := flat.FromDotted(path, value)
	if err != nil {
		return nil, err
	}
	m, ok := node.(*dict.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: %s: a structure root cannot be a sequence", types.ErrStructuralConflict, path)
	}
	return m, nil
}
