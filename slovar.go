// Package slovar converts between nested maps/sequences and their dotted-path
// flat form, projects structures with a field-selection language, and merges
// structures under several conflict policies.
//
//	d := slovar.Of("user", slovar.Of("name", "joe", "secret", "x"))
//	flat := slovar.Flatten(d, false)           // {"user.name": "joe", "user.secret": "x"}
//	out, err := slovar.ExtractFields(d, "user.name__as__who:upper")
//	                                           // {"who": "JOE"}
package slovar

import (
	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/fields"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/merge"
	"github.com/solatis/slovar/internal/project"
	"github.com/solatis/slovar/internal/types"
)

type (
	// Dict is an insertion-ordered map of nodes.
	Dict = dict.Dict
	// RuleRecord is a parsed field-selection expression.
	RuleRecord = types.RuleRecord
	// UpdatePolicy controls UpdateWith.
	UpdatePolicy = types.UpdatePolicy
	// BuildOptions controls BuildFrom.
	BuildOptions = project.BuildOptions
	// HasOptions controls Has.
	HasOptions = project.HasOptions
	// TransformFunc converts one value in Extract.
	TransformFunc = project.TransformFunc
	// TransformRegistry maps transform names to functions.
	TransformRegistry = project.TransformRegistry
	// Engine runs projections with a fixed transform registry.
	Engine = project.Engine
	// Parser memoizes parsed field expressions.
	Parser = fields.Parser
)

var (
	ErrMalformedPath              = types.ErrMalformedPath
	ErrStructuralConflict         = types.ErrStructuralConflict
	ErrMutuallyExclusiveSelection = types.ErrMutuallyExclusiveSelection
	ErrNotAppendable              = types.ErrNotAppendable
	ErrMissingKey                 = types.ErrMissingKey
	ErrTransform                  = types.ErrTransform
	ErrInvalidConfiguration       = types.ErrInvalidConfiguration
	ErrInvalidValue               = types.ErrInvalidValue
	ErrCoercionFailed             = types.ErrCoercionFailed
)

// New returns an empty Dict.
func New() *Dict { return dict.New() }

// Of builds a Dict from alternating keys and values.
func Of(kv ...any) *Dict { return dict.Of(kv...) }

// FromMap converts a native map, ordering keys lexically.
func FromMap(m map[string]any) *Dict { return dict.FromMap(m) }

// Flatten returns the dotted-path form of node.
func Flatten(node any, keepLists bool) *Dict { return flat.Flatten(node, keepLists) }

// Unflatten rebuilds the nested structure described by a flat map.
func Unflatten(flatMap *Dict) (*Dict, error) { return flat.Unflatten(flatMap) }

// FromDotted builds the structure holding value at path alone.
func FromDotted(path string, value any) (any, error) { return flat.FromDotted(path, value) }

// RecursiveMerge fills dst from src in place; dst's scalars always win.
func RecursiveMerge(dst, src *Dict) *Dict { return merge.RecursiveMerge(dst, src) }

// UpdateWith returns dst updated with src under policy.
func UpdateWith(dst, src *Dict, policy UpdatePolicy) (*Dict, error) {
	return merge.UpdateWith(dst, src, policy)
}

// MergeWith is UpdateWith without overwriting existing keys.
func MergeWith(dst, src *Dict, reverse bool) (*Dict, error) { return merge.MergeWith(dst, src, reverse) }

// DeepUpdate overwrites dst's leaves with src's, path by path.
func DeepUpdate(dst, src *Dict) (*Dict, error) { return merge.DeepUpdate(dst, src) }

// DefaultUpdatePolicy overwrites and nothing else.
func DefaultUpdatePolicy() UpdatePolicy { return types.DefaultUpdatePolicy() }

// ParseFields parses field-selection expressions.
func ParseFields(exprs []string, parse bool) (RuleRecord, error) { return fields.Parse(exprs, parse) }

// NewParser returns a caching field-expression parser.
func NewParser(size int) (*Parser, error) { return fields.NewParser(size) }

// Extract projects d according to rec.
func Extract(d *Dict, rec RuleRecord) (*Dict, error) { return project.Extract(d, rec) }

// ExtractFields parses exprs and projects d with them.
func ExtractFields(d *Dict, exprs ...string) (*Dict, error) { return project.ExtractFields(d, exprs...) }

// NewEngine returns a projection engine; nil means the built-in transforms.
func NewEngine(reg *TransformRegistry) *Engine { return project.NewEngine(reg) }

// DefaultTransforms returns a registry of the built-in transforms.
func DefaultTransforms() *TransformRegistry { return project.DefaultTransforms() }

// Subset keeps only or drops the given keys.
func Subset(d *Dict, only, exclude []string) (*Dict, error) { return project.Subset(d, only, exclude) }

// GetByPrefix selects flat keys by prefix pattern.
func GetByPrefix(d *Dict, prefixes ...string) (*Dict, error) { return project.GetByPrefix(d, prefixes) }

// GetTree returns the subtree under prefix layered over defaults.
func GetTree(d *Dict, prefix string, defaults *Dict) (*Dict, error) {
	return project.GetTree(d, prefix, defaults)
}

// BuildFrom builds a structure from source following {source: target} rules.
func BuildFrom(source, rules *Dict, opts BuildOptions) (*Dict, error) {
	return project.BuildFrom(source, rules, opts)
}

// Transform moves flat leaves to new dotted paths.
func Transform(d *Dict, rules map[string]string) (*Dict, error) { return project.Transform(d, rules) }

// Sensor redacts leaves whose dotted key ends with one of patterns.
func Sensor(d *Dict, patterns ...string) (*Dict, error) { return project.Sensor(d, patterns) }

// Has validates presence, kind and values of keys.
func Has(d *Dict, keys []string, opts HasOptions) error { return project.Has(d, keys, opts) }

// Contains reports whether d holds every entry of other, ignoring exclude.
func Contains(d, other *Dict, exclude ...string) (bool, error) { return project.Contains(d, other, exclude) }
