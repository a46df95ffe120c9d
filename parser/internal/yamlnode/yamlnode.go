// Package yamlnode provides helpers for reading and building yaml.Node trees.
//
// The parser decodes every document into a yaml.Node tree (JSON is a subset
// of YAML) and encodes by building a node tree with a fixed key order. These
// helpers keep that code free of node-construction boilerplate.
package yamlnode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/internal/maputil"
)

// Short tags of the core YAML schema.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
	TagMap    = "!!map"
	TagSeq    = "!!seq"
)

// Resolve follows alias nodes to the node they refer to.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsNull reports whether n is absent or an explicit null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == TagNull)
}

// Describe renders a compact description of n for error messages,
// e.g. `string "abc"`, `mapping {$ref, type}` or `sequence of 3 items`.
func Describe(n *yaml.Node) string {
	n = Resolve(n)
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return "empty document"
		}
		return Describe(n.Content[0])
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			if len(keys) == 5 {
				keys = append(keys, "...")
				break
			}
			keys = append(keys, Resolve(n.Content[i]).Value)
		}
		return "mapping {" + strings.Join(keys, ", ") + "}"
	case yaml.SequenceNode:
		if len(n.Content) == 1 {
			return "sequence of 1 item"
		}
		return fmt.Sprintf("sequence of %d items", len(n.Content))
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case TagNull:
			return "null"
		case TagString:
			return "string " + strconv.Quote(truncate(n.Value, 40))
		case TagInt:
			return "integer " + truncate(n.Value, 40)
		case TagFloat:
			return "number " + truncate(n.Value, 40)
		case TagBool:
			return "boolean " + n.Value
		default:
			return n.ShortTag() + " " + strconv.Quote(truncate(n.Value, 40))
		}
	}
	return "unknown node"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// String returns a string scalar node.
func String(v string) *yaml.Node {
	return Scalar(TagString, v)
}

// Bool returns a boolean scalar node.
func Bool(v bool) *yaml.Node {
	return Scalar(TagBool, strconv.FormatBool(v))
}

// Null returns a null scalar node.
func Null() *yaml.Node {
	return Scalar(TagNull, "null")
}

// Scalar returns a scalar node with the given tag and value.
func Scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Sequence returns a sequence node holding items.
func Sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

// Mapping builds a mapping node, keeping keys in insertion order.
type Mapping struct {
	Node *yaml.Node
}

// NewMapping returns an empty mapping builder.
func NewMapping() *Mapping {
	return &Mapping{Node: &yaml.Node{Kind: yaml.MappingNode}}
}

// Set appends key with value v.
func (m *Mapping) Set(key string, v *yaml.Node) {
	m.Node.Content = append(m.Node.Content, String(key), v)
}

// SetIfNotEmpty appends key as a string if v is not empty.
func (m *Mapping) SetIfNotEmpty(key, v string) {
	if v != "" {
		m.Set(key, String(v))
	}
}

// SetIfNotNil appends key if v is not nil.
func (m *Mapping) SetIfNotNil(key string, v *yaml.Node) {
	if v != nil {
		m.Set(key, v)
	}
}

// SetBoolIfNotNil appends key as a boolean if v is not nil.
func (m *Mapping) SetBoolIfNotNil(key string, v *bool) {
	if v != nil {
		m.Set(key, Bool(*v))
	}
}

// Len returns the number of keys set so far.
func (m *Mapping) Len() int {
	return len(m.Node.Content) / 2
}

// FromValue converts a generic decoded value (as produced by decoding a node
// into an any) back to a node. Map keys are emitted in lexical order.
func FromValue(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case int:
		return Scalar(TagInt, strconv.Itoa(val)), nil
	case int64:
		return Scalar(TagInt, strconv.FormatInt(val, 10)), nil
	case uint64:
		return Scalar(TagInt, strconv.FormatUint(val, 10)), nil
	case float64:
		return Scalar(TagFloat, formatFloat(val)), nil
	case string:
		return String(val), nil
	case []any:
		node := Sequence()
		node.Content = make([]*yaml.Node, 0, len(val))
		for _, item := range val {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		m := NewMapping()
		for _, k := range maputil.SortedKeys(val) {
			child, err := FromValue(val[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, child)
		}
		return m.Node, nil
	case *yaml.Node:
		return val, nil
	default:
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("yamlnode: cannot encode %T: %w", v, err)
		}
		return &node, nil
	}
}

// formatFloat keeps integral floats recognizable as floats ("1.0", not "1").
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
