package flat

import (
	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/dotpath"
)

// FromDotted builds the structure holding value at path alone.
//
//	FromDotted("a.b.c", 100) -> {"a": {"b": {"c": 100}}}
//	FromDotted("a.b.1", 100) -> {"a": {"b": [nil, 100]}}
//
// A leading index segment yields a []any instead of a *Dict.
func FromDotted(path string, value any) (any, error) {
	parts, err := dotpath.Split(path)
	if err != nil {
		return nil, err
	}
	node := dict.DeepCopy(value)
	for i := len(parts) - 1; i >= 0; i-- {
		if !dotpath.IsIndex(parts[i]) {
			node = dict.Of(parts[i], node)
			continue
		}
		idx, err := dotpath.Index(parts[i])
		if err != nil {
			return nil, err
		}
		seq := dotpath.EnsureLength(make([]any, 0, idx+1), idx, nil)
		node = append(seq, node)
	}
	return node, nil
}
