package merge

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/types"
)

func TestRecursiveMerge(t *testing.T) {
	tests := []struct {
		name string
		dst  *dict.Dict
		src  *dict.Dict
		want string
	}{
		{
			name: "fills missing keys",
			dst:  dict.Of("a", 1),
			src:  dict.Of("b", 2),
			want: `{"a":1,"b":2}`,
		},
		{
			name: "deep merges maps",
			dst:  dict.Of("m", dict.Of("x", 1)),
			src:  dict.Of("m", dict.Of("y", 2)),
			want: `{"m":{"x":1,"y":2}}`,
		},
		{
			name: "destination scalar wins",
			dst:  dict.Of("a", 1),
			src:  dict.Of("a", 2),
			want: `{"a":1}`,
		},
		{
			name: "destination sequence wins",
			dst:  dict.Of("l", []any{1}),
			src:  dict.Of("l", []any{2, 3}),
			want: `{"l":[1]}`,
		},
		{
			name: "destination scalar wins over map",
			dst:  dict.Of("a", "s"),
			src:  dict.Of("a", dict.Of("x", 1)),
			want: `{"a":"s"}`,
		},
		{
			name: "nested scalar conflict",
			dst:  dict.Of("m", dict.Of("x", 1)),
			src:  dict.Of("m", dict.Of("x", 9, "z", 3)),
			want: `{"m":{"x":1,"z":3}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecursiveMerge(tt.dst, tt.src)
			assert.Same(t, tt.dst, got, "merge happens in place")
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRecursiveMerge_CopiesSource(t *testing.T) {
	inner := dict.Of("x", 1)
	dst := RecursiveMerge(dict.New(), dict.Of("m", inner))
	inner.Set("x", 2)
	assert.Equal(t, `{"m":{"x":1}}`, dst.String())
}

func TestDeepUpdate(t *testing.T) {
	dst := dict.Of("a", dict.Of("x", 1, "y", 2), "l", []any{1})
	src := dict.Of("a", dict.Of("y", 20, "z", 30), "l", []any{9})

	got, err := DeepUpdate(dst, src)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"x":1,"y":20,"z":30},"l":[9]}`, got.String())
	assert.Equal(t, `{"a":{"x":1,"y":2},"l":[1]}`, dst.String(), "input untouched")
}

func TestUpdateWith(t *testing.T) {
	tests := []struct {
		name    string
		dst     *dict.Dict
		src     *dict.Dict
		policy  types.UpdatePolicy
		want    string
		wantErr error
	}{
		{
			name:   "overwrite",
			dst:    dict.Of("a", 1, "b", 2),
			src:    dict.Of("b", 3, "c", 4),
			policy: types.DefaultUpdatePolicy(),
			want:   `{"a":1,"b":3,"c":4}`,
		},
		{
			name:   "no overwrite keeps existing",
			dst:    dict.Of("a", 1, "b", 2),
			src:    dict.Of("b", 3, "c", 4),
			policy: types.UpdatePolicy{},
			want:   `{"a":1,"b":2,"c":4}`,
		},
		{
			name:   "exclude",
			dst:    dict.Of("a", 1),
			src:    dict.Of("a", 2, "secret", "x"),
			policy: types.UpdatePolicy{Overwrite: true, Exclude: []string{"secret"}},
			want:   `{"a":2}`,
		},
		{
			name:   "reverse swaps roles",
			dst:    dict.Of("a", 1, "b", 2),
			src:    dict.Of("a", 9),
			policy: types.UpdatePolicy{Overwrite: true, Reverse: true},
			want:   `{"a":1,"b":2}`,
		},
		{
			name:   "append sequence",
			dst:    dict.Of("l", []any{1}),
			src:    dict.Of("l", []any{2, 3}),
			policy: types.UpdatePolicy{Overwrite: true, AppendTo: []string{"l"}},
			want:   `{"l":[1,2,3]}`,
		},
		{
			name:   "append single value",
			dst:    dict.Of("l", []any{1}),
			src:    dict.Of("l", 2),
			policy: types.UpdatePolicy{Overwrite: true, AppendTo: []string{"l"}},
			want:   `{"l":[1,2]}`,
		},
		{
			name:   "append to absent key sets it",
			dst:    dict.New(),
			src:    dict.Of("l", []any{1}),
			policy: types.UpdatePolicy{Overwrite: true, AppendTo: []string{"l"}},
			want:   `{"l":[1]}`,
		},
		{
			name:   "append to set by whole element",
			dst:    dict.Of("tags", []any{"a", "b"}),
			src:    dict.Of("tags", []any{"b", "c", "a"}),
			policy: types.UpdatePolicy{Overwrite: true, AppendToSet: map[string]string{"tags": ""}},
			want:   `{"tags":["a","b","c"]}`,
		},
		{
			name: "append to set keeps elements without the sub-key",
			dst:  dict.Of("tags", []any{dict.Of("id", 1), "loose"}),
			src:  dict.Of("tags", []any{dict.Of("id", 1, "v", 2), "loose"}),
			policy: types.UpdatePolicy{
				Overwrite:   true,
				AppendToSet: map[string]string{"tags": "id"},
			},
			want: `{"tags":[{"id":1},"loose","loose"]}`,
		},
		{
			name:    "append to scalar",
			dst:     dict.Of("l", "x"),
			src:     dict.Of("l", []any{1}),
			policy:  types.UpdatePolicy{Overwrite: true, AppendTo: []string{"l"}},
			wantErr: types.ErrNotAppendable,
		},
		{
			name:    "append to set on scalar",
			dst:     dict.Of("l", 1),
			src:     dict.Of("l", []any{1}),
			policy:  types.UpdatePolicy{Overwrite: true, AppendToSet: map[string]string{"l": ""}},
			wantErr: types.ErrNotAppendable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dstBefore, srcBefore := tt.dst.String(), tt.src.String()
			got, err := UpdateWith(tt.dst, tt.src, tt.policy)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateWith() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.want, got.String())
			} else {
				assert.Nil(t, got, "no partial result on failure")
			}
			assert.Equal(t, dstBefore, tt.dst.String(), "dst untouched")
			assert.Equal(t, srcBefore, tt.src.String(), "src untouched")
		})
	}
}

func TestUpdateWith_AppendToSetBySubKey(t *testing.T) {
	a := dict.Of("tags", []any{dict.Of("id", 1), dict.Of("id", 2)})
	b := dict.Of("tags", []any{dict.Of("id", 2), dict.Of("id", 3)})

	got, err := UpdateWith(a, b, types.UpdatePolicy{
		Overwrite:   true,
		AppendToSet: map[string]string{"tags": "id"},
	})
	require.NoError(t, err)

	tags := got.Value("tags").([]any)
	ids := make([]any, len(tags))
	for i, tag := range tags {
		ids[i] = tag.(*dict.Dict).Value("id")
	}
	assert.Equal(t, []any{1, 2, 3}, ids)
}

func TestMergeWith(t *testing.T) {
	dst := dict.Of("a", 1)
	src := dict.Of("a", 2, "b", 3)

	got, err := MergeWith(dst, src, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":3}`, got.String())

	got, err = MergeWith(dst, src, true)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":3}`, got.String())
}

// Property-based test: recursive merge never overwrites destination scalars
func TestRecursiveMerge_PropertyPrecedence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("recursive_merge(A, B)[k] == A[k] for scalar k", prop.ForAll(
		func(key string, a, b int, extra string) bool {
			dst := dict.Of(key, a)
			src := dict.Of(key, b, key+"_extra", extra)
			got := RecursiveMerge(dst, src)
			return dict.Equal(got.Value(key), a) && dict.Equal(got.Value(key+"_extra"), extra)
		},
		gen.Identifier(),
		gen.Int(),
		gen.Int(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property-based test: overwrite law of update_with
func TestUpdateWith_PropertyOverwrite(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("update_with(A, B, overwrite)[k] == B[k]", prop.ForAll(
		func(keys []string, a, b int) bool {
			dst, src := dict.New(), dict.New()
			for i, k := range keys {
				dst.Set(k, a+i)
				src.Set(k, dict.Of("v", b+i))
			}
			got, err := UpdateWith(dst, src, types.DefaultUpdatePolicy())
			if err != nil {
				return false
			}
			for _, k := range src.Keys() {
				if !dict.Equal(got.Value(k), src.Value(k)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.Int(),
		gen.Int(),
	))

	properties.TestingRun(t)
}
