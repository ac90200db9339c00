package dict

import (
	"math"
	"testing"
	"time"
)

func TestEqual(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int and float", 1, 1.0, true},
		{"int64 and int", int64(3), 3, true},
		{"different numbers", 1, 2, false},
		{"number and string", 1, "1", false},
		{"nil and nil", nil, nil, true},
		{"nil and empty string", nil, "", false},
		{"dict order ignored", Of("a", 1, "b", 2), Of("b", 2, "a", 1), true},
		{"dict differs", Of("a", 1), Of("a", 2), false},
		{"dict extra key", Of("a", 1), Of("a", 1, "b", 2), false},
		{"sequence order matters", []any{1, 2}, []any{2, 1}, false},
		{"nested", Of("l", []any{Of("x", 1.0)}), Of("l", []any{Of("x", 1)}), true},
		{"native map against dict", map[string]any{"a": 1}, Of("a", 1), true},
		{"dict against native map", Of("a", 1), map[string]any{"a": 1}, true},
		{"sequence against native slice", []any{"x"}, []string{"x"}, true},
		{"native slice against sequence", []int{1, 2}, []any{1.0, 2.0}, true},
		{"time instants", now, now.In(time.FixedZone("x", 3600)), true},
		{"nil dicts", (*Dict)(nil), New(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{0.0, false},
		{math.Inf(1), true},
		{"", false},
		{"0", true},
		{New(), false},
		{Of("a", nil), true},
		{[]any{}, false},
		{[]any{nil}, true},
		{time.Time{}, false},
		{map[string]int{}, false},
	}

	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
