// internal/merge/update.go
package merge

import (
	"fmt"
	"slices"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Policy-driven top-level update.
 *
 * Decision order for every (key, value) of src:
 *   1. key in Exclude                     -> skip
 *   2. !Overwrite and key already in dst  -> skip (append policies included)
 *   3. key in AppendTo and in dst         -> extend dst[key]
 *   4. key in AppendToSet and in dst      -> extend, then de-duplicate
 *   5. otherwise                          -> dst[key] = value
 *
 * Extending requires dst[key] to be a sequence (ErrNotAppendable). A sequence
 * value is concatenated, any other value appended as one element.
 *
 * De-duplication keeps the first element seen. With a sub-key, elements are
 * compared by that sub-key's value and elements lacking it are always kept;
 * without one, whole elements are compared with dict.Equal.
 */

// UpdateWith applies src onto a copy of dst according to policy.
// Neither input is modified.
func UpdateWith(dst, src *dict.Dict, policy types.UpdatePolicy) (*dict.Dict, error) {
	if policy.Reverse {
		dst, src = src, dst
	}
	out := dst.DeepCopy()

	var err error
	src.Range(func(key string, value any) bool {
		if slices.Contains(policy.Exclude, key) {
			return true
		}
		_, present := out.Get(key)
		if !policy.Overwrite && present {
			return true
		}

		setKey, inSet := policy.AppendToSet[key]
		switch {
		case present && slices.Contains(policy.AppendTo, key):
			err = appendTo(out, key, value)
		case present && inSet:
			if err = appendTo(out, key, value); err == nil {
				dedupe(out, key, setKey)
			}
		default:
			out.Set(key, dict.DeepCopy(value))
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MergeWith fills keys missing from dst with src's values.
// With reverse, dst's values are layered under src instead.
func MergeWith(dst, src *dict.Dict, reverse bool) (*dict.Dict, error) {
	return UpdateWith(dst, src, types.UpdatePolicy{Reverse: reverse})
}

func appendTo(out *dict.Dict, key string, value any) error {
	existing, _ := out.Get(key)
	seq, ok := existing.([]any)
	if !ok {
		return fmt.Errorf("%w: `%s` holds %T", types.ErrNotAppendable, key, existing)
	}
	if more, ok := dict.Normalize(value).([]any); ok {
		seq = append(seq, dict.DeepCopy(more).([]any)...)
	} else {
		seq = append(seq, dict.DeepCopy(value))
	}
	out.Set(key, seq)
	return nil
}

func dedupe(out *dict.Dict, key, setKey string) {
	existing, _ := out.Get(key)
	seq := existing.([]any)
	uniques := make([]any, 0, len(seq))

	if setKey == "" {
		for _, each := range seq {
			if !slices.ContainsFunc(uniques, func(u any) bool { return dict.Equal(u, each) }) {
				uniques = append(uniques, each)
			}
		}
		out.Set(key, uniques)
		return
	}

	var met []any
	for _, each := range seq {
		m, ok := each.(*dict.Dict)
		if !ok || !m.Has(setKey) {
			// no set key: treated as unique
			uniques = append(uniques, each)
			continue
		}
		id := m.Value(setKey)
		if slices.ContainsFunc(met, func(seen any) bool { return dict.Equal(seen, id) }) {
			continue
		}
		met = append(met, id)
		uniques = append(uniques, each)
	}
	out.Set(key, uniques)
}
