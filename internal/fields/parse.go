// internal/fields/parse.go
package fields

import (
	"fmt"
	"slices"
	"strings"

	"github.com/solatis/slovar/internal/types"
)

/*
 * Field-selection expression parsing.
 *
 * Turns expressions such as "name__as__display:upper,-secret" into a
 * types.RuleRecord. Every input string is split on commas; each trimmed,
 * non-empty token is one directive:
 *
 *   *                 Star: project the whole structure
 *   -key              Exclude key
 *   key               Only key (may end in "*" for a prefix match)
 *   key:t1:t2         Transforms for the output key, applied in order
 *   key__as__new      Rename key to new
 *   pref..suf         Nested: collect suf from every element of pref
 *
 * Only "*", "-key" and "key" are recognized when parse is false; the other
 * forms are then taken literally as keys.
 *
 * Validation: empty keys and empty transform names are rejected with
 * ErrInvalidConfiguration. Mixing Only and Exclude is legal here and rejected
 * by the projection engine, which owns that rule.
 */

// RenameMarker separates a key from its display name.
const RenameMarker = "__as__"

// TransformMarker separates a key from its transform list.
const TransformMarker = ":"

// Parse converts field expressions into a rule record.
func Parse(exprs []string, parse bool) (types.RuleRecord, error) {
	rec := types.NewRuleRecord()

	for _, token := range Tokens(exprs) {
		if token == "*" {
			rec.Star = true
			continue
		}
		if strings.HasPrefix(token, "-") {
			key := strings.TrimSpace(token[1:])
			if key == "" {
				return types.RuleRecord{}, fmt.Errorf("%w: %q excludes an empty key", types.ErrInvalidConfiguration, token)
			}
			rec.Exclude = append(rec.Exclude, key)
			continue
		}
		if !parse {
			rec.Only = append(rec.Only, token)
			continue
		}
		if err := parseDirective(&rec, token); err != nil {
			return types.RuleRecord{}, err
		}
	}

	if !rec.Star {
		for _, nkey := range types.SortedKeys(rec.Nested) {
			pref := rec.Nested[nkey]
			if !slices.Contains(rec.Only, pref) {
				rec.Only = append(rec.Only, pref)
			}
		}
	}

	return rec, nil
}

// parseDirective handles one positive token in parse mode.
func parseDirective(rec *types.RuleRecord, token string) error {
	head, trs, hasTransforms := strings.Cut(token, TransformMarker)

	key, display, renamed := strings.Cut(head, RenameMarker)
	key = strings.TrimSpace(key)
	display = strings.TrimSpace(display)
	if key == "" || (renamed && display == "") {
		return fmt.Errorf("%w: %q has an empty key", types.ErrInvalidConfiguration, token)
	}

	out := key
	if renamed {
		rec.ShowAs[key] = display
		rec.ShowAsR[display] = key
		out = display
	}

	if hasTransforms {
		names := strings.Split(trs, TransformMarker)
		for i, name := range names {
			names[i] = strings.TrimSpace(name)
			if names[i] == "" {
				return fmt.Errorf("%w: %q has an empty transform", types.ErrInvalidConfiguration, token)
			}
		}
		rec.Transforms[out] = append(rec.Transforms[out], names...)
	}

	if pref, suf, ok := strings.Cut(key, types.NestedMarker); ok {
		if pref == "" || suf == "" {
			return fmt.Errorf("%w: nested key %q needs both a prefix and a suffix", types.ErrInvalidConfiguration, key)
		}
		rec.Nested[key] = pref
		return nil
	}

	rec.Only = append(rec.Only, key)
	return nil
}

// Tokens splits expressions on commas and drops blanks.
func Tokens(exprs []string) []string {
	var out []string
	for _, expr := range exprs {
		for _, part := range strings.Split(expr, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
