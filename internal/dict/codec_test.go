package dict

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   *Dict
		want string
	}{
		{
			name: "insertion order kept",
			in:   Of("z", 1, "a", []any{true, nil, "s"}),
			want: `{"z":1,"a":[true,null,"s"]}`,
		},
		{
			name: "time truncated to seconds",
			in:   Of("at", time.Date(2024, 3, 9, 8, 7, 6, 999, time.UTC)),
			want: `{"at":"2024-03-09T08:07:06"}`,
		},
		{
			name: "unconvertible value falls back to string",
			in:   Of("x", math.NaN()),
			want: `{"x":"NaN"}`,
		},
		{
			name: "nested dicts",
			in:   Of("a", Of("b", Of("c", 1.5))),
			want: `{"a":{"b":{"c":1.5}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestUnmarshalJSON_KeepsOrder(t *testing.T) {
	var d Dict
	require.NoError(t, json.Unmarshal([]byte(`{"c":1,"a":{"z":[1,{"y":2}],"b":null},"b":"x"}`), &d))
	assert.Equal(t, []string{"c", "a", "b"}, d.Keys())

	inner := d.Value("a").(*Dict)
	assert.Equal(t, []string{"z", "b"}, inner.Keys())
	assert.Equal(t, `{"c":1,"a":{"z":[1,{"y":2}],"b":null},"b":"x"}`, d.String())
}

func TestUnmarshalJSON_Errors(t *testing.T) {
	var d Dict
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &d), "root must be an object")

	_, err := DecodeJSON(strings.NewReader(`{"a":1} {"b":2}`))
	assert.Error(t, err, "trailing data is rejected")

	_, err = DecodeJSON(strings.NewReader(`{"a":`))
	assert.Error(t, err)
}

func TestDecodeJSON_Scalars(t *testing.T) {
	v, err := DecodeJSON(strings.NewReader(`"s"`))
	require.NoError(t, err)
	assert.Equal(t, "s", v)

	v, err = DecodeJSON(strings.NewReader(`[1, "a"]`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), "a"}, v)
}

func TestYAML_RoundTripKeepsOrder(t *testing.T) {
	src := `zeta: 1
alpha:
  list:
    - name: x
    - name: y
  empty: null
beta: hello
`
	v, err := DecodeYAML(strings.NewReader(src))
	require.NoError(t, err)
	d, ok := v.(*Dict)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, d.Keys())

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, d, 2))
	back, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.True(t, Equal(d, back))
	assert.Equal(t, d.Keys(), back.(*Dict).Keys())
	assert.Equal(t, []string{"list", "empty"}, back.(*Dict).Value("alpha").(*Dict).Keys())
}

func TestYAML_UnmarshalerInterface(t *testing.T) {
	var d Dict
	require.NoError(t, yaml.Unmarshal([]byte("b: 1\na: [1, 2]\n"), &d))
	assert.Equal(t, []string{"b", "a"}, d.Keys())
	assert.Equal(t, []any{1, 2}, d.Value("a"))

	out, err := yaml.Marshal(Of("t", time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)
	assert.Contains(t, string(out), "2020-01-02T03:04:05")
}
