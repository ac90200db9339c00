package types

import (
	"errors"
	"testing"
)

func TestParseAppendToSet(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    map[string]string
		wantErr error
	}{
		{name: "plain key", entries: []string{"tags"}, want: map[string]string{"tags": ""}},
		{name: "sub-key", entries: []string{"tags:id", " refs:uid "}, want: map[string]string{"tags": "id", "refs": "uid"}},
		{name: "empty", entries: nil, want: map[string]string{}},
		{name: "missing key", entries: []string{":id"}, wantErr: ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAppendToSet(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAppendToSet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAppendToSet() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("ParseAppendToSet()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestRuleRecord_Clone(t *testing.T) {
	rec := NewRuleRecord()
	rec.Only = []string{"a"}
	rec.Transforms["a"] = []string{"upper"}
	rec.ShowAs["a"] = "b"

	cp := rec.Clone()
	cp.Only[0] = "z"
	cp.Transforms["a"][0] = "lower"
	cp.ShowAs["a"] = "c"

	if rec.Only[0] != "a" || rec.Transforms["a"][0] != "upper" || rec.ShowAs["a"] != "b" {
		t.Errorf("Clone() shares state with the original: %+v", rec)
	}
}

func TestRuleRecord_IsEmpty(t *testing.T) {
	if !NewRuleRecord().IsEmpty() {
		t.Error("new record should be empty")
	}
	if (RuleRecord{Star: true}).IsEmpty() {
		t.Error("star record is not empty")
	}
	rec := NewRuleRecord()
	rec.Transforms["x"] = []string{"=1"}
	if rec.IsEmpty() {
		t.Error("record with transforms is not empty")
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"b": 1, "c": 2, "a": 3})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("SortedKeys() = %v", got)
	}
}
