// Package dict provides the ordered structure type shared by every slovar engine.
//
// A Dict is a string-keyed map that remembers insertion order. Values are
// nodes: nil, bool, numbers, string, time.Time, *Dict or []any. Native Go maps
// and slices handed to New*, Set or Normalize are converted recursively, so
// engines only ever see *Dict and []any containers.
package dict

import (
	"fmt"
	"sort"

	"github.com/solatis/slovar/internal/types"
)

// Dict is an insertion-ordered map of nodes.
// The zero value is not usable; call New.
type Dict struct {
	keys  []string
	items map[string]any
}

// New returns an empty Dict.
func New() *Dict {
	return &Dict{items: make(map[string]any)}
}

// FromMap converts a native map. Keys are ordered lexically because Go maps
// carry no order of their own.
func FromMap(m map[string]any) *Dict {
	d := &Dict{
		keys:  make([]string, 0, len(m)),
		items: make(map[string]any, len(m)),
	}
	for k := range m {
		d.keys = append(d.keys, k)
	}
	sort.Strings(d.keys)
	for _, k := range d.keys {
		d.items[k] = Normalize(m[k])
	}
	return d
}

// Of builds a Dict from alternating keys and values, keeping argument order.
// It panics on an odd argument count or a non-string key.
func Of(kv ...any) *Dict {
	if len(kv)%2 != 0 {
		panic("dict.Of: odd number of arguments")
	}
	d := New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("dict.Of: key %v is %T, not string", kv[i], kv[i]))
		}
		d.Set(key, kv[i+1])
	}
	return d
}

// Normalize converts native maps and slices into *Dict and []any, recursively.
// Slices are always re-allocated; *Dict values are returned as-is.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromMap(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return FromMap(m)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = FromMap(e)
		}
		return out
	case []*Dict:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []int:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []float64:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return v
	}
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns a copy of the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.items[key]
	return v, ok
}

// Value returns the value under key, or nil.
func (d *Dict) Value(key string) any {
	v, _ := d.Get(key)
	return v
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// HasAny reports whether at least one of keys is present.
func (d *Dict) HasAny(keys ...string) bool {
	for _, k := range keys {
		if d.Has(k) {
			return true
		}
	}
	return false
}

// Set stores value under key. An existing key keeps its position.
func (d *Dict) Set(key string, value any) {
	if _, ok := d.items[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.items[key] = Normalize(value)
}

// Delete removes key and returns the removed value.
func (d *Dict) Delete(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.items[key]
	if !ok {
		return nil, false
	}
	delete(d.items, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Remove deletes every key in keys, ignoring absent ones.
func (d *Dict) Remove(keys ...string) *Dict {
	for _, k := range keys {
		d.Delete(k)
	}
	return d
}

// Range calls fn for each entry in order until fn returns false.
// fn must not add or delete keys.
func (d *Dict) Range(fn func(key string, value any) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.items[k]) {
			return
		}
	}
}

// Update overwrites d's top-level entries with deep copies of other's.
func (d *Dict) Update(other *Dict) *Dict {
	other.Range(func(k string, v any) bool {
		d.Set(k, DeepCopy(v))
		return true
	})
	return d
}

// Copy returns a shallow copy: nested containers are shared.
func (d *Dict) Copy() *Dict {
	out := &Dict{
		keys:  d.Keys(),
		items: make(map[string]any, d.Len()),
	}
	d.Range(func(k string, v any) bool {
		out.items[k] = v
		return true
	})
	return out
}

// DeepCopy returns a copy sharing no containers with d.
func (d *Dict) DeepCopy() *Dict {
	if d == nil {
		return New()
	}
	out := &Dict{
		keys:  d.Keys(),
		items: make(map[string]any, d.Len()),
	}
	for _, k := range d.keys {
		out.items[k] = DeepCopy(d.items[k])
	}
	return out
}

// DeepCopy copies containers recursively and returns scalars unchanged.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.DeepCopy()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = DeepCopy(e)
		}
		return out
	default:
		return Normalize(v)
	}
}

// ToMap converts d into native map[string]any / []any values.
func (d *Dict) ToMap() map[string]any {
	out := make(map[string]any, d.Len())
	d.Range(func(k string, v any) bool {
		out[k] = ToNative(v)
		return true
	})
	return out
}

// ToNative converts a node into native Go containers.
func ToNative(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToNative(e)
		}
		return out
	default:
		return v
	}
}

// Mget returns the values of the present keys, in argument order.
func (d *Dict) Mget(keys ...string) []any {
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		if v, ok := d.Get(k); ok {
			out = append(out, v)
		}
	}
	return out
}

// GetFirst returns the value of the first present key.
func (d *Dict) GetFirst(keys ...string) (any, error) {
	for _, k := range keys {
		if v, ok := d.Get(k); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: neither of %v found", types.ErrMissingKey, keys)
}

// PopMany removes keys from d and returns them; absent keys map to nil.
func (d *Dict) PopMany(keys ...string) *Dict {
	popped := New()
	for _, k := range keys {
		v, _ := d.Delete(k)
		popped.Set(k, v)
	}
	return popped
}

// PopByValues removes every entry whose value equals one of vals.
func (d *Dict) PopByValues(vals ...any) *Dict {
	for _, k := range d.Keys() {
		v := d.items[k]
		for _, candidate := range vals {
			if Equal(v, candidate) {
				d.Delete(k)
				break
			}
		}
	}
	return d
}

// String renders d as JSON.
func (d *Dict) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<dict: %v>", err)
	}
	return string(b)
}
