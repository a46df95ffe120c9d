package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/parser/internal/yamlnode"
)

// marshalNodeJSONIndent writes node as indented JSON, keeping mapping keys
// in node order. The output ends with a newline.
func marshalNodeJSONIndent(node *yaml.Node, prefix, indent string) ([]byte, error) {
	var compact bytes.Buffer
	if err := marshalNodeAsJSON(&compact, node); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact.Bytes(), prefix, indent); err != nil {
		return nil, fmt.Errorf("parser: failed to indent json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// marshalNodeAsJSON writes a yaml.Node to a buffer as compact JSON.
// encoding/json sorts map keys, so the node is walked directly to keep the
// fixed field order of each entity.
func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node) error {
	node = yamlnode.Resolve(node)
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return marshalNodeAsJSON(buf, node.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, yamlnode.Resolve(node.Content[i]).Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeJSONScalar(buf, node)

	default:
		return fmt.Errorf("parser: cannot write yaml node kind %v as json", node.Kind)
	}
}

// writeJSONScalar writes a scalar according to its resolved tag.
func writeJSONScalar(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case yamlnode.TagNull:
		buf.WriteString("null")
	case yamlnode.TagBool:
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return fmt.Errorf("parser: invalid boolean %q: %w", node.Value, err)
		}
		buf.WriteString(strconv.FormatBool(b))
	case yamlnode.TagInt:
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return writeJSONNumber(buf, node.Value)
		}
		buf.WriteString(strconv.FormatInt(i, 10))
	case yamlnode.TagFloat:
		return writeJSONNumber(buf, node.Value)
	default:
		return writeJSONString(buf, node.Value)
	}
	return nil
}

func writeJSONNumber(buf *bytes.Buffer, s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("parser: number %q cannot be written as json", s)
	}
	return writeJSON(buf, f)
}

// writeJSONString writes s as a JSON string without HTML escaping, so
// descriptions containing <, > or & stay readable.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

// writeJSON marshals a value to JSON and writes it to the buffer.
func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
