// internal/types/rules.go
package types

import "sort"

/*
 * Rule record consumed by the projection engine.
 *
 * RuleRecord is the parsed form of a field-selection expression. The parser
 * in internal/fields produces it; internal/project consumes it. Keeping the
 * shape here lets callers build records by hand without the parser.
 *
 * Field semantics:
 *   - Only/Exclude: flat keys to include or drop (Only may hold "prefix*")
 *   - Nested: "pref..suf" -> "pref", collect suf for every index of pref
 *   - ShowAs/ShowAsR: forward (old -> new) and reverse (new -> old) renames
 *   - Transforms: ordered transform names per output key
 *   - Star: bypass Only/Exclude and project the whole structure
 */

// NestedMarker separates the collection prefix from the per-element suffix
// in a Nested key.
const NestedMarker = ".."

// RuleRecord is a parsed field-selection expression.
type RuleRecord struct {
	Only       []string
	Exclude    []string
	Nested     map[string]string
	ShowAs     map[string]string
	ShowAsR    map[string]string
	Transforms map[string][]string
	Star       bool
}

// NewRuleRecord returns a record with all maps allocated.
func NewRuleRecord() RuleRecord {
	return RuleRecord{
		Nested:     make(map[string]string),
		ShowAs:     make(map[string]string),
		ShowAsR:    make(map[string]string),
		Transforms: make(map[string][]string),
	}
}

// IsEmpty reports whether the record selects nothing and reshapes nothing.
func (r RuleRecord) IsEmpty() bool {
	return !r.Star && len(r.Only) == 0 && len(r.Exclude) == 0 &&
		len(r.Nested) == 0 && len(r.ShowAsR) == 0 && len(r.Transforms) == 0
}

// Clone returns a deep copy so callers may mutate the result freely.
func (r RuleRecord) Clone() RuleRecord {
	out := NewRuleRecord()
	out.Star = r.Star
	out.Only = append([]string(nil), r.Only...)
	out.Exclude = append([]string(nil), r.Exclude...)
	for k, v := range r.Nested {
		out.Nested[k] = v
	}
	for k, v := range r.ShowAs {
		out.ShowAs[k] = v
	}
	for k, v := range r.ShowAsR {
		out.ShowAsR[k] = v
	}
	for k, v := range r.Transforms {
		out.Transforms[k] = append([]string(nil), v...)
	}
	return out
}

// SortedKeys returns the keys of m in lexical order.
// Rule maps are applied in this order so results never depend on map iteration.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
