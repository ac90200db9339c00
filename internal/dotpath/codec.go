// Package dotpath splits and joins dotted flat keys.
//
// A flat key is a "."-joined list of segments. A segment made entirely of
// decimal digits addresses a sequence index; any other segment addresses a
// map key. Split(Join(s)) == s and Join(Split(p)) == p for every key without
// empty segments; empty segments are rejected with types.ErrMalformedPath.
package dotpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solatis/slovar/internal/types"
)

// MaxIndex is the largest sequence index a path may address when building
// structures. Larger indices are rejected with types.ErrMalformedPath.
const MaxIndex = 1 << 20

// Split breaks a flat key into its segments.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", types.ErrMalformedPath)
	}
	parts := strings.Split(path, types.Separator)
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", types.ErrMalformedPath, path)
		}
	}
	return parts, nil
}

// Join is the inverse of Split.
func Join(segments []string) string {
	return strings.Join(segments, types.Separator)
}

// IsIndex reports whether every character of seg is a decimal digit.
// The empty string is not an index.
func IsIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// Parse splits path and classifies each segment.
func Parse(path string) ([]types.PathSegment, error) {
	parts, err := Split(path)
	if err != nil {
		return nil, err
	}
	segs := make([]types.PathSegment, len(parts))
	for i, part := range parts {
		segs[i] = Segment(part)
	}
	return segs, nil
}

// Segment classifies a single raw segment.
func Segment(part string) types.PathSegment {
	if IsIndex(part) {
		if n, err := strconv.Atoi(part); err == nil {
			return types.PathSegment{Key: part, Index: n, IsIndex: true}
		}
	}
	return types.PathSegment{Key: part}
}

// Index returns the integer value of an index segment.
// Digit runs too large for int are reported as malformed.
func Index(seg string) (int, error) {
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 || n > MaxIndex {
		return 0, fmt.Errorf("%w: index %q out of range, limit is %d", types.ErrMalformedPath, seg, MaxIndex)
	}
	return n, nil
}

// EnsureLength grows seq to at least n elements, filling new slots with fill().
// fill is called once per slot so mutable placeholders are never shared.
func EnsureLength(seq []any, n int, fill func() any) []any {
	for len(seq) < n {
		var v any
		if fill != nil {
			v = fill()
		}
		seq = append(seq, v)
	}
	return seq
}

// Child joins base and key, omitting the separator when base is empty.
func Child(base, key string) string {
	if base == "" {
		return key
	}
	return base + types.Separator + key
}
