// internal/project/subset.go
package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/dotpath"
	"github.com/solatis/slovar/internal/fields"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/merge"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Key selection: Subset, GetByPrefix, GetTree.
 *
 * Membership: a key is matched against top-level keys first. A dotted key that
 * is not a top-level key is resolved as a path into the structure, so "user.name"
 * selects from nested data while flat inputs keep matching their dotted keys
 * directly.
 *
 * Prefix patterns ("a.b.*") are resolved on the flattened view and re-keyed
 * relative to the pattern's last segment, so "a.b.*" turns "a.b.c" into "c".
 */

// Subset keeps only the keys in only, or drops the keys in exclude.
// Supplying both is ErrMutuallyExclusiveSelection; supplying neither returns a copy.
func Subset(d *dict.Dict, only, exclude []string) (*dict.Dict, error) {
	if len(only) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("%w: only=%v exclude=%v", types.ErrMutuallyExclusiveSelection, only, exclude)
	}

	switch {
	case len(only) > 0:
		return subsetOnly(d, only)
	case len(exclude) > 0:
		out := dict.New()
		d.Range(func(k string, v any) bool {
			if !slices.Contains(exclude, k) {
				out.Set(k, dict.DeepCopy(v))
			}
			return true
		})
		for _, k := range exclude {
			if !d.Has(k) && strings.Contains(k, types.Separator) {
				removePath(out, k)
			}
		}
		return out, nil
	default:
		return d.DeepCopy(), nil
	}
}

// SubsetKeys parses "key" / "-key" selections and applies Subset.
func SubsetKeys(d *dict.Dict, keys []string) (*dict.Dict, error) {
	rec, err := fields.Parse(keys, false)
	if err != nil {
		return nil, err
	}
	if rec.Star {
		return d.DeepCopy(), nil
	}
	return Subset(d, rec.Only, rec.Exclude)
}

func subsetOnly(d *dict.Dict, only []string) (*dict.Dict, error) {
	var exact, prefixed []string
	for _, k := range only {
		if strings.HasSuffix(k, "*") {
			prefixed = append(prefixed, k)
		} else {
			exact = append(exact, k)
		}
	}

	out := dict.New()
	d.Range(func(k string, v any) bool {
		if slices.Contains(exact, k) {
			out.Set(k, dict.DeepCopy(v))
		}
		return true
	})
	for _, k := range exact {
		if d.Has(k) || !strings.Contains(k, types.Separator) {
			continue
		}
		v, ok := d.Lookup(k)
		if !ok {
			continue
		}
		if err := out.SetPath(k, dict.DeepCopy(v)); err != nil {
			return nil, err
		}
	}

	if len(prefixed) == 0 {
		return out, nil
	}
	matched, err := GetByPrefix(d, prefixed)
	if err != nil {
		return nil, err
	}
	return merge.UpdateWith(out, matched, types.DefaultUpdatePolicy())
}

// GetByPrefix selects flat keys by prefix pattern and re-keys them relative to
// the pattern's last segment. A pattern ending in "*" matches every key that
// starts with the rest of the pattern; any other pattern matches one key exactly.
func GetByPrefix(d *dict.Dict, prefixes []string) (*dict.Dict, error) {
	out := dict.New()
	flat.Flatten(d, true).Range(func(k string, v any) bool {
		for _, pref := range prefixes {
			if pref == "" {
				continue
			}
			base := pref[:len(pref)-1]
			if strings.HasSuffix(pref, "*") {
				if !strings.HasPrefix(k, base) {
					continue
				}
			} else if k != pref {
				continue
			}
			out.Set(relativeKey(k, base), dict.DeepCopy(v))
		}
		return true
	})
	return flat.Unflatten(out)
}

// relativeKey strips k up to the last separator inside base.
func relativeKey(k, base string) string {
	if ix := strings.LastIndex(base, types.Separator); ix > 0 {
		return k[ix+1:]
	}
	return k
}

// GetTree returns the subtree under prefix, layered over defaults.
// The prefix is normalized to end with the separator.
func GetTree(d *dict.Dict, prefix string, defaults *dict.Dict) (*dict.Dict, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty tree prefix", types.ErrMalformedPath)
	}
	if !strings.HasSuffix(prefix, types.Separator) {
		prefix += types.Separator
	}

	out := flat.Flatten(defaults, true)
	flat.Flatten(d, true).Range(func(k string, v any) bool {
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			out.Set(rest, dict.DeepCopy(v))
		}
		return true
	})
	return flat.Unflatten(out)
}

// removePath deletes key (top-level or dotted) and prunes maps it leaves empty.
func removePath(d *dict.Dict, key string) {
	if _, ok := d.Delete(key); ok {
		return
	}
	if _, ok := d.DeletePath(key); !ok {
		return
	}
	parts, err := dotpath.Split(key)
	if err != nil {
		return
	}
	for i := len(parts) - 1; i > 0; i-- {
		parent := dotpath.Join(parts[:i])
		v, ok := d.Lookup(parent)
		if m, isMap := v.(*dict.Dict); !ok || !isMap || m.Len() > 0 {
			return
		}
		d.DeletePath(parent)
	}
}
