// internal/dict/path.go
package dict

import (
	"fmt"

	"github.com/solatis/slovar/internal/dotpath"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Dotted-path access into nested structures.
 *
 * GetPath/SetPath/DeletePath are the explicit replacement for attribute-style
 * access (d.a.b). Segments address map keys on a *Dict and indices on a []any.
 * A digit segment on a *Dict is looked up as a plain key, since maps may carry
 * numeric-looking keys.
 *
 * Key functions:
 *   - GetPath: strict lookup, ErrMissingKey when any segment is absent
 *   - Lookup: top-level key first, then dotted path (projection membership)
 *   - SetPath: creates intermediate containers, sequence when the next
 *     segment is an index, map otherwise; pads sequences with nil
 *   - DeletePath: removes a map entry addressed by path
 */

// GetPath returns the value at path.
func (d *Dict) GetPath(path string) (any, error) {
	segs, err := dotpath.Parse(path)
	if err != nil {
		return nil, err
	}
	v, ok := resolve(segs, d)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrMissingKey, path)
	}
	return v, nil
}

// Lookup finds key as a top-level entry, falling back to a dotted path.
func (d *Dict) Lookup(key string) (any, bool) {
	if v, ok := d.Get(key); ok {
		return v, true
	}
	segs, err := dotpath.Parse(key)
	if err != nil || len(segs) < 2 {
		return nil, false
	}
	return resolve(segs, d)
}

// resolve walks segs from current. Returns false on the first missing step.
func resolve(segs []types.PathSegment, current any) (any, bool) {
	for _, seg := range segs {
		switch v := current.(type) {
		case *Dict:
			next, ok := v.Get(seg.Key)
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			if !seg.IsIndex || seg.Index >= len(v) {
				return nil, false
			}
			current = v[seg.Index]
		default:
			// scalar or nil but path continues
			return nil, false
		}
	}
	return current, true
}

// SetPath stores value at path, creating intermediate containers as needed.
// An existing scalar in the way is a structural conflict.
func (d *Dict) SetPath(path string, value any) error {
	segs, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	_, err = assign(d, segs, Normalize(value), path)
	return err
}

// assign stores value under segs inside container and returns the container,
// which differs from the input when a sequence had to grow.
func assign(container any, segs []types.PathSegment, value any, path string) (any, error) {
	seg := segs[0]
	last := len(segs) == 1

	switch c := container.(type) {
	case *Dict:
		if last {
			c.Set(seg.Key, value)
			return c, nil
		}
		child, _ := c.Get(seg.Key)
		if child == nil {
			child = emptyFor(segs[1])
		}
		updated, err := assign(child, segs[1:], value, path)
		if err != nil {
			return nil, err
		}
		c.Set(seg.Key, updated)
		return c, nil

	case []any:
		if !seg.IsIndex {
			return nil, fmt.Errorf("%w: %s: key %q addresses a sequence", types.ErrStructuralConflict, path, seg.Key)
		}
		if seg.Index > dotpath.MaxIndex {
			return nil, fmt.Errorf("%w: %s: index %d exceeds %d", types.ErrMalformedPath, path, seg.Index, dotpath.MaxIndex)
		}
		c = dotpath.EnsureLength(c, seg.Index+1, nil)
		if last {
			c[seg.Index] = value
			return c, nil
		}
		child := c[seg.Index]
		if child == nil {
			child = emptyFor(segs[1])
		}
		updated, err := assign(child, segs[1:], value, path)
		if err != nil {
			return nil, err
		}
		c[seg.Index] = updated
		return c, nil

	default:
		return nil, fmt.Errorf("%w: %s: segment %q descends into %T", types.ErrStructuralConflict, path, seg.Key, container)
	}
}

// emptyFor returns the container kind the next segment needs.
func emptyFor(next types.PathSegment) any {
	if next.IsIndex {
		return []any{}
	}
	return New()
}

// DeletePath removes the map entry at path and returns its value.
// Paths ending in a sequence index are left untouched.
func (d *Dict) DeletePath(path string) (any, bool) {
	if v, ok := d.Delete(path); ok {
		return v, true
	}
	segs, err := dotpath.Parse(path)
	if err != nil {
		return nil, false
	}
	parent, ok := resolve(segs[:len(segs)-1], d)
	if !ok {
		return nil, false
	}
	pd, ok := parent.(*Dict)
	if !ok {
		return nil, false
	}
	return pd.Delete(segs[len(segs)-1].Key)
}
