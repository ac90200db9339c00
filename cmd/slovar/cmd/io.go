package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solatis/slovar/internal/core/config"
	"github.com/solatis/slovar/internal/dict"
)

// readDict reads a document from path ("" or "-" for stdin) and requires a
// mapping at its root.
func (a *app) readDict(cmd *cobra.Command, path string) (*dict.Dict, error) {
	v, err := a.readNode(cmd, path)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*dict.Dict)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping at the document root, got %T", displayName(path), v)
	}
	return d, nil
}

func (a *app) readNode(cmd *cobra.Command, path string) (any, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var (
		v   any
		err error
	)
	switch a.formatFor(path) {
	case config.FormatYAML:
		v, err = dict.DecodeYAML(r)
	default:
		v, err = dict.DecodeJSON(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", displayName(path), err)
	}
	return v, nil
}

// formatFor resolves the input format: --input-format, then file extension.
func (a *app) formatFor(path string) string {
	if a.inputFormat != "" {
		return strings.ToLower(a.inputFormat)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.FormatYAML
	default:
		return config.FormatJSON
	}
}

// write renders v to the command's output in the configured format.
func (a *app) write(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	if a.cfg.OutputFormat == config.FormatYAML {
		return dict.EncodeYAML(out, v, a.cfg.OutputIndent)
	}

	b, err := dict.EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if a.cfg.OutputIndent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", strings.Repeat(" ", a.cfg.OutputIndent)); err != nil {
			return fmt.Errorf("failed to indent output: %w", err)
		}
		b = buf.Bytes()
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// parseScalar reads a command-line value as JSON, falling back to the raw string.
func parseScalar(s string) any {
	v, err := dict.DecodeJSON(strings.NewReader(s))
	if err != nil {
		return s
	}
	return v
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
