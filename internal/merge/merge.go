// Package merge combines structures under two conflict policies.
//
// RecursiveMerge fills missing keys and deep-merges maps but never replaces
// a value the destination already holds: a scalar or sequence in dst always
// wins over src. UpdateWith is the explicit, policy-driven alternative that
// can overwrite, append, de-duplicate, exclude and reverse roles.
package merge

import (
	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/flat"
)

// RecursiveMerge merges src into dst in place and returns dst.
// Keys missing from dst are deep-copied in; when both sides hold maps they
// are merged recursively; any other collision keeps dst's value.
func RecursiveMerge(dst, src *dict.Dict) *dict.Dict {
	src.Range(func(key string, value any) bool {
		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, dict.DeepCopy(value))
			return true
		}
		dm, dok := existing.(*dict.Dict)
		sm, sok := value.(*dict.Dict)
		if dok && sok {
			RecursiveMerge(dm, sm)
		}
		return true
	})
	return dst
}

// DeepUpdate overwrites dst's leaves with src's, comparing flat views, and
// returns a new structure. Neither input is modified.
func DeepUpdate(dst, src *dict.Dict) (*dict.Dict, error) {
	merged := flat.Flatten(dst, true)
	merged.Update(flat.Flatten(src, true))
	return flat.Unflatten(merged)
}
