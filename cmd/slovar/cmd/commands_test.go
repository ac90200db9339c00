package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with stdin and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "flatten",
			stdin: `{"a":{"b":1},"l":[1,2]}`,
			args:  []string{"flatten", "--indent", "0"},
			want:  `{"a.b":1,"l.0":1,"l.1":2}`,
		},
		{
			name:  "flatten keeping lists with base",
			stdin: `{"a":{"b":1},"l":[1,2]}`,
			args:  []string{"flatten", "--keep-lists", "--base", "root", "--indent", "0"},
			want:  `{"root.a.b":1,"root.l":[1,2]}`,
		},
		{
			name:  "unflatten",
			stdin: `{"a.b":1,"l.1":"x"}`,
			args:  []string{"unflatten", "--indent", "0"},
			want:  `{"a":{"b":1},"l":[null,"x"]}`,
		},
		{
			name:  "extract",
			stdin: `{"name":" joe ","age":3,"secret":"s"}`,
			args:  []string{"extract", "-f", "name:strip:upper", "-f", "age__as__years", "--indent", "0"},
			want:  `{"name":"JOE","years":3}`,
		},
		{
			name:  "subset exclude",
			stdin: `{"a":1,"b":2,"c":3}`,
			args:  []string{"subset", "-k", "-b", "--indent", "0"},
			want:  `{"a":1,"c":3}`,
		},
		{
			name:  "prefix",
			stdin: `{"a":{"b":{"c":1,"d":2}},"x":1}`,
			args:  []string{"prefix", "-p", "a.b.*", "--indent", "0"},
			want:  `{"c":1,"d":2}`,
		},
		{
			name:  "tree",
			stdin: `{"a":{"b":{"c":1}},"x":1}`,
			args:  []string{"tree", "-p", "a", "--indent", "0"},
			want:  `{"b":{"c":1}}`,
		},
		{
			name: "from-dotted",
			args: []string{"from-dotted", "a.0.b", "5", "--indent", "0"},
			want: `{"a":[{"b":5}]}`,
		},
		{
			name: "from-dotted keeps non-JSON values as strings",
			args: []string{"from-dotted", "a.b", "hello", "--indent", "0"},
			want: `{"a":{"b":"hello"}}`,
		},
		{
			name:  "sensor",
			stdin: `{"user":{"password":"p","name":"n"}}`,
			args:  []string{"sensor", "-p", "password", "--indent", "0"},
			want:  `{"user":{"password":"******","name":"n"}}`,
		},
		{
			name:  "indented output",
			stdin: `{"a":{"b":1}}`,
			args:  []string{"flatten"},
			want:  "{\n  \"a.b\": 1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", got)
		})
	}
}

func TestMergeAndUpdate(t *testing.T) {
	dst := writeFile(t, "dst.json", `{"ids":[1,2],"name":"a","cfg":{"x":1}}`)
	src := writeFile(t, "src.json", `{"ids":[2,3],"name":"b","cfg":{"y":2}}`)

	got, err := run(t, "", "merge", dst, src, "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[1,2],"name":"a","cfg":{"x":1,"y":2}}`+"\n", got)

	got, err = run(t, "", "update", dst, src, "--append-to-set", "ids", "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[1,2,3],"name":"b","cfg":{"y":2}}`+"\n", got)

	got, err = run(t, "", "update", dst, src, "--overwrite=false", "--exclude", "ids", "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[1,2],"name":"a","cfg":{"x":1}}`+"\n", got)
}

func TestYAMLInputAndOutput(t *testing.T) {
	in := writeFile(t, "doc.yaml", "a:\n  b: 1\n  c: [p, q]\n")

	got, err := run(t, "", "flatten", in, "--output-format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "a.b: 1\na.c.0: p\na.c.1: q\n", got)

	got, err = run(t, "a.b: 1\n", "unflatten", "--input-format", "yaml", "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":1}}`+"\n", got)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantMsg string
	}{
		{name: "invalid output format", stdin: `{}`, args: []string{"flatten", "--output-format", "xml"}, wantMsg: "output.format"},
		{name: "root must be a mapping", stdin: `[1]`, args: []string{"flatten"}, wantMsg: "expected a mapping"},
		{name: "broken JSON", stdin: `{"a":`, args: []string{"flatten"}, wantMsg: "failed to decode stdin"},
		{name: "unflatten conflict", stdin: `{"a":1,"a.b":2}`, args: []string{"unflatten"}, wantMsg: "failed to unflatten"},
		{name: "mixed selection", stdin: `{"a":1}`, args: []string{"extract", "-f", "a,-b"}, wantMsg: "failed to extract"},
		{name: "bad field expression", stdin: `{"a":1}`, args: []string{"extract", "-f", "a:"}, wantMsg: "failed to parse fields"},
		{name: "tree needs a prefix", stdin: `{"a":1}`, args: []string{"tree"}, wantMsg: "prefix"},
		{name: "missing file", args: []string{"flatten", "/nonexistent/doc.json"}, wantMsg: "failed to open input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
