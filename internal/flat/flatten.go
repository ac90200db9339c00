// Package flat converts between nested structures and dotted-path flat maps.
//
// Flatten walks maps in insertion order and sequences in index order, so the
// flat map's key order is deterministic. Unflatten rebuilds containers from
// path shape alone: a digit segment means "sequence index", anything else
// "map key". Sequence gaps are filled with empty maps so deeper paths can
// descend into them later.
package flat

import (
	"strconv"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/dotpath"
)

// Flatten returns the flat form of node, which must be a *Dict or a sequence.
// With keepLists, sequences are leaves instead of being walked by index.
// Empty maps and sequences contribute no entries.
func Flatten(node any, keepLists bool) *dict.Dict {
	return FlattenBase(node, "", keepLists)
}

// FlattenBase is Flatten with every key prefixed by base.
func FlattenBase(node any, base string, keepLists bool) *dict.Dict {
	out := dict.New()
	flattenInto(out, dict.Normalize(node), base, keepLists)
	return out
}

func flattenInto(out *dict.Dict, node any, base string, keepLists bool) {
	switch n := node.(type) {
	case *dict.Dict:
		n.Range(func(key string, value any) bool {
			visit(out, dotpath.Child(base, key), value, keepLists)
			return true
		})
	case []any:
		for i, value := range n {
			visit(out, dotpath.Child(base, strconv.Itoa(i)), value, keepLists)
		}
	}
}

func visit(out *dict.Dict, path string, value any, keepLists bool) {
	switch v := value.(type) {
	case *dict.Dict:
		flattenInto(out, v, path, keepLists)
	case []any:
		if keepLists {
			out.Set(path, dict.DeepCopy(v))
			return
		}
		flattenInto(out, v, path, keepLists)
	default:
		out.Set(path, v)
	}
}
