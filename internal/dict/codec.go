// internal/dict/codec.go
package dict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

/*
 * JSON and YAML codecs for Dict.
 *
 * Both directions keep mapping key order. On output, time.Time renders as an
 * ISO-8601 timestamp truncated to whole seconds (TimeLayout), and any value
 * encoding/json rejects (NaN, channels, funcs) falls back to its fmt string.
 */

// TimeLayout is the rendering of time.Time leaves in JSON and YAML output.
const TimeLayout = "2006-01-02T15:04:05"

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders any node as JSON.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, Normalize(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Dict:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeJSON(buf, t.items[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case time.Time:
		b, err := json.Marshal(t.Format(TimeLayout))
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			// unconvertible values render as their string form
			b, err = json.Marshal(fmt.Sprint(t))
			if err != nil {
				return err
			}
		}
		buf.Write(b)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping document key order.
func (d *Dict) UnmarshalJSON(data []byte) error {
	v, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	m, ok := v.(*Dict)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*d = *m
	return nil
}

// DecodeJSON reads one JSON value. Objects become *Dict, arrays []any,
// numbers float64.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		out := New()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	case '[':
		out := []any{}
		for dec.More() {
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (d *Dict) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeYAML(node)
	if err != nil {
		return err
	}
	m, ok := v.(*Dict)
	if !ok {
		return fmt.Errorf("expected YAML mapping, got %T", v)
	}
	*d = *m
	return nil
}

// DecodeYAML reads one YAML document into nodes.
func DecodeYAML(r io.Reader) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return decodeYAML(&doc)
}

func decodeYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeYAML(node.Content[0])
	case yaml.MappingNode:
		out := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			v, err := decodeYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := decodeYAML(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeYAML(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// MarshalYAML implements yaml.Marshaler, keeping insertion order.
func (d *Dict) MarshalYAML() (any, error) {
	return encodeYAML(d)
}

// EncodeYAML renders any node as a YAML document.
func EncodeYAML(w io.Writer, v any, indent int) error {
	node, err := encodeYAML(Normalize(v))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func encodeYAML(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range t.keys {
			vn, err := encodeYAML(t.items[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			en, err := encodeYAML(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Format(TimeLayout)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(t); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(t)}, nil
		}
		return n, nil
	}
}
