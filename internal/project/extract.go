// internal/project/extract.go
package project

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/fields"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/types"
)

/*
 * Extract: the full projection pipeline over a parsed rule record.
 *
 * Steps, in order:
 *   1. Base selection: the whole structure when Star, else Subset(Only, Exclude).
 *   2. Nested collection: for every "pref..suf" rule, element i of the
 *      sibling sequence contributes the flat subset at exactly "pref.i.suf",
 *      keyed by that full flat key, e.g. {"items.0.id": 1}. Elements lacking
 *      the leaf contribute an empty map. The list is stored under "pref.suf"
 *      and the sibling itself is dropped from the base.
 *   3. Renames: source values are read first, then every display key is
 *      written, so swaps do not see each other's writes. Sources are removed
 *      unless a source is itself a display key.
 *   4. Transforms: applied in order to present keys; "=X" entries set a
 *      literal default on absent keys, other entries on absent keys are no-ops.
 *   5. The result is unflattened, so dotted output keys become nested.
 *
 * Rule maps are walked in sorted key order so output never depends on map
 * iteration order. The input is never mutated.
 */

// Engine runs projections with a fixed transform registry.
type Engine struct {
	transforms *TransformRegistry
}

// NewEngine creates a projection engine. A nil registry means DefaultTransforms.
func NewEngine(reg *TransformRegistry) *Engine {
	if reg == nil {
		reg = DefaultTransforms()
	}
	return &Engine{transforms: reg}
}

var defaultEngine = NewEngine(nil)

// Extract projects d with the built-in transforms.
func Extract(d *dict.Dict, rec types.RuleRecord) (*dict.Dict, error) {
	return defaultEngine.Extract(d, rec)
}

// ExtractFields parses field expressions and projects d with them.
func ExtractFields(d *dict.Dict, exprs ...string) (*dict.Dict, error) {
	rec, err := fields.Parse(exprs, true)
	if err != nil {
		return nil, err
	}
	return defaultEngine.Extract(d, rec)
}

// Extract projects d according to rec.
func (e *Engine) Extract(d *dict.Dict, rec types.RuleRecord) (*dict.Dict, error) {
	if rec.IsEmpty() {
		return d.DeepCopy(), nil
	}
	rec = rec.Clone()

	var out *dict.Dict
	if rec.Star {
		out = d.DeepCopy()
	} else {
		var err error
		if out, err = Subset(d, rec.Only, rec.Exclude); err != nil {
			return nil, err
		}
	}

	if len(rec.Nested) > 0 {
		collectNested(d, out, &rec)
	}

	renameKeys(out, rec.ShowAsR)

	if err := e.applyTransforms(out, rec.Transforms); err != nil {
		return nil, err
	}

	return flat.Unflatten(out)
}

// collectNested performs step 2 on out, updating rename maps in rec for the
// collapsed keys.
func collectNested(src, out *dict.Dict, rec *types.RuleRecord) {
	flatSrc := flat.Flatten(src, false)
	collected := dict.New()

	for _, nkey := range types.SortedKeys(rec.Nested) {
		pref, suf, ok := strings.Cut(nkey, types.NestedMarker)
		if !ok {
			continue
		}
		n := 0
		if v, found := src.Lookup(rec.Nested[nkey]); found {
			if seq, isSeq := v.([]any); isSeq {
				n = len(seq)
			}
		}

		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, elementField(flatSrc, pref+types.Separator+strconv.Itoa(i)+types.Separator+suf))
		}

		newKey := pref + types.Separator + suf
		collected.Set(newKey, items)

		if display, renamed := rec.ShowAs[nkey]; renamed {
			delete(rec.ShowAs, nkey)
			rec.ShowAs[newKey] = display
			rec.ShowAsR[display] = newKey
		}
	}

	for _, nkey := range types.SortedKeys(rec.Nested) {
		removePath(out, rec.Nested[nkey])
	}
	out.Update(collected)
}

// elementField returns the flat subset of flatSrc holding exactly key.
func elementField(flatSrc *dict.Dict, key string) *dict.Dict {
	picked := dict.New()
	if v, ok := flatSrc.Get(key); ok {
		picked.Set(key, dict.DeepCopy(v))
	}
	return picked
}

// renameKeys copies every source value to its display key, then drops sources.
func renameKeys(out *dict.Dict, showAsR map[string]string) {
	if len(showAsR) == 0 {
		return
	}
	displays := types.SortedKeys(showAsR)
	snapshot := make(map[string]any, len(displays))
	for _, display := range displays {
		if v, ok := out.Lookup(showAsR[display]); ok {
			snapshot[display] = dict.DeepCopy(v)
		}
	}
	for _, display := range displays {
		if v, ok := snapshot[display]; ok {
			out.Set(display, v)
		}
	}
	for _, display := range displays {
		old := showAsR[display]
		if _, isTarget := showAsR[old]; isTarget {
			continue
		}
		removePath(out, old)
	}
}

// applyTransforms runs step 4 over out in place.
func (e *Engine) applyTransforms(out *dict.Dict, transforms map[string][]string) error {
	log := Logger()
	for _, key := range types.SortedKeys(transforms) {
		names := transforms[key]
		value, present := out.Lookup(key)

		if !present {
			for _, name := range names {
				if literal, ok := strings.CutPrefix(name, "="); ok {
					log.Debug("default applied", zap.String("key", key), zap.String("value", literal))
					out.Set(key, literal)
				}
			}
			continue
		}

		for _, name := range names {
			if strings.HasPrefix(name, "=") {
				continue
			}
			next, err := e.transforms.Apply(name, value)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			log.Debug("transform applied", zap.String("key", key), zap.String("transform", name))
			value = next
		}
		out.Set(key, value)
	}
	return nil
}
