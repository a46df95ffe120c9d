package parser

import (
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser/internal/yamlnode"
)

// decoder turns a yaml.Node tree into the typed model. It tracks the path of
// the node being decoded so every error names its location.
type decoder struct {
	dialect Dialect
	// plainScalars accepts untagged non-string scalars (e.g. `version: 1.0`)
	// where a string is expected. Enabled for YAML input only.
	plainScalars bool
	path         *pathutil.PathBuilder
}

// entry is one key/value pair of a mapping node.
type entry struct {
	key   string
	keyN  *yaml.Node
	value *yaml.Node
}

// fieldSet lists the fields a type defines. A cell whose input carries one
// of them reports the inline decode error instead of falling back to Empty.
type fieldSet []string

func (fs fieldSet) claims(entries []entry) bool {
	for _, e := range entries {
		if yamlnode.IsNull(e.value) {
			continue
		}
		for _, f := range fs {
			if e.key == f {
				return true
			}
		}
	}
	return false
}

// fail reports that the node at the current path does not have the expected shape.
func (d *decoder) fail(n *yaml.Node, expected string) error {
	err := oaserrors.NewDecodeError(d.path.String(), d.path.Pointer())
	err.Field = d.path.Last()
	err.Expected = expected
	err.Actual = yamlnode.Describe(n)
	if n = yamlnode.Resolve(n); n != nil {
		err.Line, err.Column = n.Line, n.Column
	}
	return err
}

// missing reports that the mapping n at the current path lacks a required field.
func (d *decoder) missing(n *yaml.Node, field string) error {
	err := oaserrors.NewDecodeError(d.path.String(), d.path.Pointer())
	err.Field = field
	err.Missing = true
	if n = yamlnode.Resolve(n); n != nil {
		err.Line, err.Column = n.Line, n.Column
	}
	return err
}

// mapping returns the entries of a mapping node, rejecting duplicate and
// non-scalar keys.
func (d *decoder) mapping(n *yaml.Node, what string) ([]entry, error) {
	n = yamlnode.Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.fail(n, what)
	}
	entries := make([]entry, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := yamlnode.Resolve(n.Content[i])
		if k == nil || k.Kind != yaml.ScalarNode {
			return nil, d.fail(k, "scalar mapping key")
		}
		if _, dup := seen[k.Value]; dup {
			d.path.Push(k.Value)
			err := d.fail(k, "unique mapping key")
			d.path.Pop()
			return nil, err
		}
		seen[k.Value] = struct{}{}
		entries = append(entries, entry{key: k.Value, keyN: k, value: n.Content[i+1]})
	}
	return entries, nil
}

// inline returns the entries of a mapping that must be an inline object.
// A $ref key is rejected, so a reference never validates as an inline value.
func (d *decoder) inline(n *yaml.Node, what string) ([]entry, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	if lookup(entries, "$ref") != nil {
		return nil, d.fail(n, what+" (not a reference)")
	}
	return entries, nil
}

func lookup(entries []entry, key string) *yaml.Node {
	for _, e := range entries {
		if e.key == key && !yamlnode.IsNull(e.value) {
			return e.value
		}
	}
	return nil
}

// each calls fn for every entry with a non-null value, with the entry's key
// pushed onto the path. Null values are treated as absent.
func (d *decoder) each(entries []entry, fn func(key string, v *yaml.Node) error) error {
	for _, e := range entries {
		if yamlnode.IsNull(e.value) {
			continue
		}
		d.path.Push(e.key)
		err := fn(e.key, yamlnode.Resolve(e.value))
		d.path.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// str decodes a string scalar.
func (d *decoder) str(n *yaml.Node) (string, error) {
	n = yamlnode.Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", d.fail(n, "string")
	}
	switch n.ShortTag() {
	case yamlnode.TagString:
		return n.Value, nil
	case yamlnode.TagInt, yamlnode.TagFloat, yamlnode.TagBool:
		if d.plainScalars && n.Style&yaml.TaggedStyle == 0 {
			return n.Value, nil
		}
	}
	return "", d.fail(n, "string")
}

// boolean decodes a boolean scalar.
func (d *decoder) boolean(n *yaml.Node) (bool, error) {
	n = yamlnode.Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != yamlnode.TagBool {
		return false, d.fail(n, "boolean")
	}
	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, d.fail(n, "boolean")
	}
	return b, nil
}

// decodeMap decodes a mapping node into a map, decoding each value with fn.
func decodeMap[V any](d *decoder, n *yaml.Node, what string, fn func(*yaml.Node) (V, error)) (map[string]V, error) {
	entries, err := d.mapping(n, "mapping of "+what)
	if err != nil {
		return nil, err
	}
	m := make(map[string]V, len(entries))
	for _, e := range entries {
		d.path.Push(e.key)
		v, err := fn(e.value)
		d.path.Pop()
		if err != nil {
			return nil, err
		}
		m[e.key] = v
	}
	return m, nil
}

// nilIfEmpty maps an empty map to nil. Fields the encoder always writes use
// it so that nil and {} decode to the same value.
func nilIfEmpty[V any](m map[string]V) map[string]V {
	if len(m) == 0 {
		return nil
	}
	return m
}

// decodeList decodes a sequence node into a slice, decoding each item with fn.
func decodeList[V any](d *decoder, n *yaml.Node, what string, fn func(*yaml.Node) (V, error)) ([]V, error) {
	n = yamlnode.Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, "sequence of "+what)
	}
	list := make([]V, 0, len(n.Content))
	for i, item := range n.Content {
		d.path.PushIndex(i)
		v, err := fn(item)
		d.path.Pop()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

// decodeObject decodes a reference-or-value cell. The inline value is tried
// first, then a reference, then Empty. A malformed $ref or description makes
// the reference attempt fail, not the cell. Empty is only chosen when the
// input carries none of the fields in fields; otherwise the inline error
// surfaces.
func decodeObject[T any](d *decoder, n *yaml.Node, fields fieldSet, decodeValue func(*yaml.Node) (T, error)) (Object[T], error) {
	n = yamlnode.Resolve(n)
	if yamlnode.IsNull(n) || n.Kind != yaml.MappingNode {
		return Object[T]{}, nil
	}
	entries, err := d.mapping(n, "mapping")
	if err != nil {
		return Object[T]{}, err
	}

	v, valueErr := decodeValue(n)
	if valueErr == nil {
		return ValueOf(v), nil
	}

	if ref, ok := d.reference(entries); ok {
		return Object[T]{kind: KindReference, ref: ref}, nil
	}

	if fields.claims(entries) {
		return Object[T]{}, valueErr
	}
	return Object[T]{}, nil
}

// reference decodes a {$ref, description?} mapping. It reports false when
// entries carry no $ref key or when $ref or description is not a string.
func (d *decoder) reference(entries []entry) (Reference, bool) {
	if lookup(entries, "$ref") == nil {
		return Reference{}, false
	}
	var ref Reference
	err := d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			ref.Ref, err = d.str(v)
		case "description":
			ref.Description, err = d.str(v)
		}
		return err
	})
	if err != nil {
		return Reference{}, false
	}
	return ref, true
}
