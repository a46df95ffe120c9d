package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser/internal/yamlnode"
)

// Encode encodes spec as JSON or YAML text.
//
// Fields are written in a fixed order per entity, maps in lexical key order,
// and path item operations in canonical method order. Optional fields that
// are unset are omitted; required fields are always written. SourceFormatAuto
// encodes YAML.
func Encode(spec *Spec, format SourceFormat) ([]byte, error) {
	node, err := EncodeNode(spec)
	if err != nil {
		return nil, err
	}
	switch format {
	case SourceFormatJSON:
		return marshalNodeJSONIndent(node, "", "  ")
	case SourceFormatYAML, SourceFormatAuto, SourceFormatUnknown:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("parser: failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("parser: failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, &oaserrors.ConfigError{Option: "format", Value: string(format), Message: "unsupported format"}
	}
}

// EncodeNode builds the node tree Encode writes.
func EncodeNode(spec *Spec) (*yaml.Node, error) {
	if spec == nil {
		return nil, fmt.Errorf("parser: cannot encode a nil spec")
	}
	e := &encoder{}
	node := e.spec(spec)
	if e.err != nil {
		return nil, e.err
	}
	return node, nil
}

// encoder builds a node tree from the model. Only extension values can fail
// to encode; the first failure is kept in err.
type encoder struct {
	err error
}

// encodeMap sets key to values encoded in lexical key order. A nil map is omitted.
func encodeMap[V any](m *yamlnode.Mapping, key string, values map[string]V, fn func(V) *yaml.Node) {
	if values == nil {
		return
	}
	m.Set(key, mapNode(values, fn))
}

func mapNode[V any](values map[string]V, fn func(V) *yaml.Node) *yaml.Node {
	out := yamlnode.NewMapping()
	for _, k := range maputil.SortedKeys(values) {
		out.Set(k, fn(values[k]))
	}
	return out.Node
}

// encodeList sets key to the encoded items. A nil slice is omitted.
func encodeList[V any](m *yamlnode.Mapping, key string, items []V, fn func(V) *yaml.Node) {
	if items == nil {
		return
	}
	seq := yamlnode.Sequence()
	seq.Content = make([]*yaml.Node, 0, len(items))
	for _, item := range items {
		seq.Content = append(seq.Content, fn(item))
	}
	m.Set(key, seq)
}

// encodeObject encodes a reference-or-value cell.
func encodeObject[T any](o Object[T], encodeValue func(*T) *yaml.Node) *yaml.Node {
	switch o.kind {
	case KindValue:
		return encodeValue(&o.value)
	case KindReference:
		m := yamlnode.NewMapping()
		m.Set("$ref", yamlnode.String(o.ref.Ref))
		m.SetIfNotEmpty("description", o.ref.Description)
		return m.Node
	default:
		return yamlnode.NewMapping().Node
	}
}

// nilSafe wraps fn so nil pointers encode as null.
func nilSafe[T any](fn func(*T) *yaml.Node) func(*T) *yaml.Node {
	return func(v *T) *yaml.Node {
		if v == nil {
			return yamlnode.Null()
		}
		return fn(v)
	}
}

func (e *encoder) spec(s *Spec) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("openapi", yamlnode.String(s.OpenAPI))
	if s.Info != nil {
		m.Set("info", e.info(s.Info))
	}
	m.Set("paths", mapNode(s.Paths, nilSafe(e.pathItem)))
	if s.Components != nil {
		m.Set("components", e.components(s.Components))
	}
	return m.Node
}

var infoFields = []string{"title", "summary", "description", "termsOfService", "version"}

func (e *encoder) info(i *Info) *yaml.Node {
	m := yamlnode.NewMapping()
	m.SetIfNotEmpty("title", i.Title)
	m.SetIfNotEmpty("summary", i.Summary)
	m.SetIfNotEmpty("description", i.Description)
	m.SetIfNotEmpty("termsOfService", i.TermsOfService)
	m.SetIfNotEmpty("version", i.Version)
	for _, k := range maputil.SortedKeys(i.Extra) {
		if slices.Contains(infoFields, k) {
			continue
		}
		v, err := yamlnode.FromValue(i.Extra[k])
		if err != nil {
			if e.err == nil {
				e.err = fmt.Errorf("parser: info.%s: %w", k, err)
			}
			continue
		}
		m.Set(k, v)
	}
	return m.Node
}

func (e *encoder) components(c *Components) *yaml.Node {
	m := yamlnode.NewMapping()
	encodeMap(m, "schemas", c.Schemas, e.schemaCell)
	encodeMap(m, "responses", c.Responses, e.responseCell)
	encodeMap(m, "parameters", c.Parameters, e.parameterCell)
	encodeMap(m, "requestBodies", c.RequestBodies, nilSafe(e.requestBody))
	encodeMap(m, "headers", c.Headers, nilSafe(e.header))
	return m.Node
}

// pathItem writes the fixed keys, then the operations in canonical method order.
func (e *encoder) pathItem(p *PathItem) *yaml.Node {
	m := yamlnode.NewMapping()
	m.SetIfNotEmpty("summary", p.Summary)
	m.SetIfNotEmpty("description", p.Description)
	encodeList(m, "parameters", p.Parameters, e.parameterCell)
	for _, method := range SortMethods(p.Operations) {
		m.Set(string(method), nilSafe(e.operation)(p.Operations[method]))
	}
	return m.Node
}

func (e *encoder) operation(op *Operation) *yaml.Node {
	m := yamlnode.NewMapping()
	m.SetIfNotEmpty("summary", op.Summary)
	m.SetIfNotEmpty("description", op.Description)
	m.Set("operationId", yamlnode.String(op.OperationID))
	encodeList(m, "parameters", op.Parameters, e.parameterCell)
	if op.RequestBody != nil {
		m.Set("requestBody", e.requestBody(op.RequestBody))
	}
	encodeMap(m, "responses", op.Responses, nilSafe(e.response))
	return m.Node
}

func (e *encoder) response(r *Response) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("description", yamlnode.String(r.Description))
	encodeMap(m, "headers", r.Headers, e.headerCell)
	encodeMap(m, "content", r.Content, nilSafe(e.mediaType))
	return m.Node
}

func (e *encoder) responseCell(o Object[Response]) *yaml.Node {
	return encodeObject(o, e.response)
}

func (e *encoder) requestBody(rb *RequestBody) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("content", mapNode(rb.Content, nilSafe(e.mediaType)))
	return m.Node
}

func (e *encoder) mediaType(mt *MediaType) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("schema", e.schemaCell(mt.Schema))
	return m.Node
}

func (e *encoder) header(h *Header) *yaml.Node {
	m := yamlnode.NewMapping()
	m.SetIfNotEmpty("description", h.Description)
	m.Set("schema", e.schema(&h.Schema))
	return m.Node
}

func (e *encoder) headerCell(o Object[Header]) *yaml.Node {
	return encodeObject(o, e.header)
}

func (e *encoder) parameter(p *Parameter) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("name", yamlnode.String(p.Name))
	m.Set("in", yamlnode.String(p.In))
	m.SetBoolIfNotNil("required", p.Required)
	if p.Schema != nil {
		m.Set("schema", e.schemaCell(*p.Schema))
	}
	m.SetIfNotEmpty("style", p.Style)
	return m.Node
}

func (e *encoder) parameterCell(o Object[Parameter]) *yaml.Node {
	return encodeObject(o, e.parameter)
}

func (e *encoder) schema(s *Schema) *yaml.Node {
	m := yamlnode.NewMapping()
	m.Set("type", yamlnode.String(string(s.Type)))
	m.SetIfNotEmpty("format", s.Format)
	if s.Items != nil {
		m.Set("items", e.schemaCell(*s.Items))
	}
	encodeMap(m, "properties", s.Properties, e.schemaCell)
	return m.Node
}

func (e *encoder) schemaCell(o Object[Schema]) *yaml.Node {
	return encodeObject(o, e.schema)
}

// MarshalJSON implements json.Marshaler.
func (s *Spec) MarshalJSON() ([]byte, error) {
	node, err := EncodeNode(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The dialect is selected from
// the openapi version.
func (s *Spec) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data, SourceFormatJSON, DialectAuto)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s *Spec) MarshalYAML() (any, error) {
	return EncodeNode(s)
}

// UnmarshalYAML implements yaml.Unmarshaler. The dialect is selected from
// the openapi version.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := DecodeNode(node, DialectAuto)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

var (
	_ json.Marshaler   = (*Spec)(nil)
	_ json.Unmarshaler = (*Spec)(nil)
	_ yaml.Marshaler   = (*Spec)(nil)
	_ yaml.Unmarshaler = (*Spec)(nil)
)
