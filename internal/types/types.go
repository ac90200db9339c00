// Package types provides domain models shared across slovar components.
//
// Zero-dependency design: the rule record, update policy and sentinel errors
// use only the standard library so every engine package can import them
// without pulling in codecs or the CLI stack.
package types

import (
	"fmt"
	"strings"
)

// UpdatePolicy configures UpdateWith.
type UpdatePolicy struct {
	// Overwrite replaces keys already present in the destination.
	Overwrite bool
	// AppendTo keys are extended instead of replaced when the destination holds a sequence.
	AppendTo []string
	// AppendToSet keys are appended then de-duplicated. The value names the
	// element sub-key to de-duplicate by; "" means whole-element equality.
	AppendToSet map[string]string
	// Reverse swaps destination and source before the policy is applied.
	Reverse bool
	// Exclude keys are never touched.
	Exclude []string
}

// DefaultUpdatePolicy overwrites and nothing else.
func DefaultUpdatePolicy() UpdatePolicy {
	return UpdatePolicy{Overwrite: true}
}

// ParseAppendToSet converts "key" or "key:subkey" entries to an AppendToSet map.
func ParseAppendToSet(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, each := range entries {
		key, sub, _ := strings.Cut(strings.TrimSpace(each), ":")
		if key == "" {
			return nil, fmt.Errorf("%w: append_to_set entry %q has no key", ErrInvalidConfiguration, each)
		}
		out[key] = sub
	}
	return out, nil
}

// Separator joins the segments of a flat key.
const Separator = "."

// Redacted replaces values matched by Sensor.
const Redacted = "******"

// PathSegment represents one component of a dotted path.
// A segment made only of decimal digits addresses a sequence index.
type PathSegment struct {
	Key     string // raw segment text (always set)
	Index   int    // sequence index (valid only if IsIndex)
	IsIndex bool   // disambiguates Index=0 from a map key
}
