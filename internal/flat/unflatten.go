// internal/flat/unflatten.go
package flat

import (
	"fmt"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/dotpath"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Unflatten: rebuild nested containers from dotted paths.
 *
 * For each (path, leaf) in input order the context segments are walked from
 * the root. An index segment requires the current context to be a sequence,
 * which is grown with empty-map placeholders; a key segment requires a map.
 * A missing or falsy slot is initialized as a sequence when the following
 * segment is an index, as a map otherwise.
 *
 * Conflicts: a non-empty slot of the wrong kind (map addressed by index,
 * sequence addressed by key, scalar descended into) fails with
 * ErrStructuralConflict instead of guessing a precedence. The root is always
 * a map, so a leading digit segment is a conflict too.
 *
 * Sequences are built in a mutable seqBuf and converted to []any once all
 * paths are placed.
 */

// seqBuf is a growable sequence used while paths are still being placed.
type seqBuf struct {
	items []any
}

// Unflatten rebuilds the nested structure described by flat.
// Container leaf values are deep-copied into the result.
func Unflatten(flat *dict.Dict) (*dict.Dict, error) {
	root := dict.New()
	var err error
	flat.Range(func(path string, leaf any) bool {
		err = place(root, path, leaf)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	finalize(root)
	return root, nil
}

// place stores one leaf under path inside root.
func place(root *dict.Dict, path string, leaf any) error {
	parts, err := dotpath.Split(path)
	if err != nil {
		return err
	}

	var ctx any = root
	for i, part := range parts[:len(parts)-1] {
		wantSeq := dotpath.IsIndex(parts[i+1])

		if dotpath.IsIndex(part) {
			seq, ok := ctx.(*seqBuf)
			if !ok {
				return conflict(path, part, "sequence", ctx)
			}
			idx, err := dotpath.Index(part)
			if err != nil {
				return err
			}
			seq.items = dotpath.EnsureLength(seq.items, idx+1, placeholder)
			child, err := descend(seq.items[idx], wantSeq, path, parts[i+1])
			if err != nil {
				return err
			}
			seq.items[idx] = child
			ctx = child
			continue
		}

		m, ok := ctx.(*dict.Dict)
		if !ok {
			return conflict(path, part, "map", ctx)
		}
		cur, _ := m.Get(part)
		child, err := descend(cur, wantSeq, path, parts[i+1])
		if err != nil {
			return err
		}
		m.Set(part, child)
		ctx = child
	}

	leafKey := parts[len(parts)-1]
	value := dict.DeepCopy(leaf)

	if dotpath.IsIndex(leafKey) {
		seq, ok := ctx.(*seqBuf)
		if !ok {
			return conflict(path, leafKey, "sequence", ctx)
		}
		idx, err := dotpath.Index(leafKey)
		if err != nil {
			return err
		}
		seq.items = dotpath.EnsureLength(seq.items, idx+1, placeholder)
		seq.items[idx] = value
		return nil
	}

	m, ok := ctx.(*dict.Dict)
	if !ok {
		return conflict(path, leafKey, "map", ctx)
	}
	m.Set(leafKey, value)
	return nil
}

// descend returns the container to walk into for the slot holding cur.
// Falsy slots are replaced by a fresh container of the wanted kind.
func descend(cur any, wantSeq bool, path, next string) (any, error) {
	if isFalsy(cur) {
		if wantSeq {
			return &seqBuf{}, nil
		}
		return dict.New(), nil
	}
	switch c := cur.(type) {
	case *seqBuf:
		if wantSeq {
			return c, nil
		}
	case []any:
		// a sequence leaf placed by an earlier path
		if wantSeq {
			return &seqBuf{items: c}, nil
		}
	case *dict.Dict:
		if !wantSeq {
			return c, nil
		}
	}
	want := "map"
	if wantSeq {
		want = "sequence"
	}
	return nil, conflict(path, next, want, cur)
}

func isFalsy(v any) bool {
	if s, ok := v.(*seqBuf); ok {
		return len(s.items) == 0
	}
	return !dict.Truthy(v)
}

func placeholder() any {
	return dict.New()
}

func conflict(path, segment, want string, found any) error {
	return fmt.Errorf("%w: %s: segment %q needs a %s, found %s",
		types.ErrStructuralConflict, path, segment, want, kindOf(found))
}

func kindOf(v any) string {
	switch v.(type) {
	case *dict.Dict:
		return "map"
	case *seqBuf, []any:
		return "sequence"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("scalar %T", v)
	}
}

// finalize converts every seqBuf under v into []any.
func finalize(v any) any {
	switch t := v.(type) {
	case *seqBuf:
		out := make([]any, len(t.items))
		for i, e := range t.items {
			out[i] = finalize(e)
		}
		return out
	case *dict.Dict:
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			switch child.(type) {
			case *seqBuf, *dict.Dict:
				t.Set(k, finalize(child))
			}
		}
		return t
	default:
		return v
	}
}
