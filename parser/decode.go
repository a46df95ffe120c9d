package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser/internal/yamlnode"
)

// DefaultMaxDepth is the default nesting depth limit applied to input documents.
const DefaultMaxDepth = 256

// Decode decodes a complete OpenAPI document.
//
// format selects the input syntax; SourceFormatAuto (or SourceFormatUnknown)
// detects it from the content. dialect selects the decoding rules;
// DialectAuto picks them from the document's openapi version.
//
// On failure the returned Spec is nil and the error is an
// *oaserrors.ParseError (malformed text), an *oaserrors.DecodeError (a
// missing field or unexpected shape) or an *oaserrors.ResourceLimitError.
func Decode(data []byte, format SourceFormat, dialect Dialect) (*Spec, error) {
	root, format, err := readNode(data, format, DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	spec, _, err := decodeDocument(root, format, dialect)
	return spec, err
}

// DecodeNode decodes an already parsed document node. It is the entry point
// for callers that hold a yaml.Node tree, such as yaml.Unmarshaler
// implementations.
func DecodeNode(node *yaml.Node, dialect Dialect) (*Spec, error) {
	if err := checkLimits(node, DefaultMaxDepth); err != nil {
		return nil, err
	}
	spec, _, err := decodeDocument(node, SourceFormatYAML, dialect)
	return spec, err
}

// readNode parses text into a node tree and enforces the depth limit.
// It returns the format actually used.
func readNode(data []byte, format SourceFormat, maxDepth int) (*yaml.Node, SourceFormat, error) {
	switch format {
	case SourceFormatJSON, SourceFormatYAML:
	case SourceFormatAuto, SourceFormatUnknown:
		format = detectFormatFromContent(data)
		if format == SourceFormatUnknown {
			format = SourceFormatYAML
		}
	default:
		return nil, format, &oaserrors.ConfigError{Option: "format", Value: string(format), Message: "unsupported format"}
	}

	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
			return nil, format, jsonParseError(data, err)
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, format, &oaserrors.ParseError{
			Line:    yamlErrorLine(err),
			Message: "invalid " + string(format),
			Cause:   err,
		}
	}
	if err := checkLimits(&root, maxDepth); err != nil {
		return nil, format, err
	}
	return &root, format, nil
}

func jsonParseError(data []byte, err error) error {
	pe := &oaserrors.ParseError{Message: "invalid json", Cause: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line, pe.Column = offsetToLineColumn(data, syntaxErr.Offset)
	}
	return pe
}

// offsetToLineColumn converts a byte offset to a 1-based line and column.
func offsetToLineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	column := int(offset) - bytes.LastIndexByte(before, '\n')
	if column < 1 {
		column = 1
	}
	return line, column
}

var yamlLineRE = regexp.MustCompile(`line (\d+)`)

func yamlErrorLine(err error) int {
	m := yamlLineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// checkLimits rejects trees nested deeper than maxDepth, and trees whose
// aliases expand to far more nodes than the document holds.
func checkLimits(root *yaml.Node, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	var (
		nodes, aliases int
		deepest        int
	)
	var walk func(n *yaml.Node, depth int) bool
	walk = func(n *yaml.Node, depth int) bool {
		if n == nil {
			return true
		}
		nodes++
		if depth > deepest {
			deepest = depth
		}
		if depth > maxDepth {
			return false
		}
		if n.Kind == yaml.AliasNode {
			aliases++
		}
		for _, c := range n.Content {
			if !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	if !walk(root, 0) {
		return &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(maxDepth),
			Actual:       int64(deepest),
			Message:      "document is nested too deeply",
		}
	}
	if aliases == 0 {
		return nil
	}

	// The decoder follows aliases, so measure the expanded tree too.
	budget := 10*nodes + 10_000
	visited := 0
	var expand func(n *yaml.Node, depth int) bool
	expand = func(n *yaml.Node, depth int) bool {
		n = yamlnode.Resolve(n)
		if n == nil {
			return true
		}
		visited++
		if visited > budget || depth > maxDepth {
			return false
		}
		for _, c := range n.Content {
			if !expand(c, depth+1) {
				return false
			}
		}
		return true
	}
	if !expand(root, 0) {
		return &oaserrors.ResourceLimitError{
			ResourceType: "alias_expansion",
			Limit:        int64(budget),
			Message:      "aliases expand beyond the document size limit or nest too deeply",
		}
	}
	return nil
}

// decodeDocument decodes a parsed document, resolving DialectAuto from the
// openapi version. It returns the dialect that was applied.
func decodeDocument(root *yaml.Node, format SourceFormat, dialect Dialect) (*Spec, Dialect, error) {
	d := &decoder{
		dialect:      dialect,
		plainScalars: format != SourceFormatJSON,
		path:         pathutil.Get(),
	}
	defer pathutil.Put(d.path)

	doc := root
	if doc != nil && doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, dialect, d.fail(doc, "OpenAPI document")
		}
		doc = doc.Content[0]
	}

	if d.dialect == DialectAuto {
		detected, err := d.detectDialect(doc)
		if err != nil {
			return nil, dialect, err
		}
		d.dialect = detected
	}

	spec, err := d.spec(doc)
	if err != nil {
		return nil, d.dialect, err
	}
	return spec, d.dialect, nil
}

func (d *decoder) detectDialect(doc *yaml.Node) (Dialect, error) {
	entries, err := d.mapping(doc, "OpenAPI document")
	if err != nil {
		return DialectAuto, err
	}
	v := lookup(entries, "openapi")
	if v == nil {
		return DialectAuto, d.missing(doc, "openapi")
	}
	d.path.Push("openapi")
	defer d.path.Pop()
	s, err := d.str(v)
	if err != nil {
		return DialectAuto, err
	}
	dialect, err := DialectForVersion(s)
	if err != nil {
		return DialectAuto, d.fail(v, "OpenAPI 3.x version")
	}
	return dialect, nil
}

var (
	schemaFields    = fieldSet{"type", "format", "items", "properties"}
	responseFields  = fieldSet{"description", "headers", "content"}
	parameterFields = fieldSet{"name", "in", "required", "schema", "style"}
	headerFields    = fieldSet{"description", "schema"}
)

func (d *decoder) spec(n *yaml.Node) (*Spec, error) {
	entries, err := d.mapping(n, "OpenAPI document")
	if err != nil {
		return nil, err
	}
	if lookup(entries, "openapi") == nil {
		return nil, d.missing(n, "openapi")
	}
	if lookup(entries, "paths") == nil {
		return nil, d.missing(n, "paths")
	}

	spec := &Spec{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "openapi":
			spec.OpenAPI, err = d.str(v)
		case "info":
			spec.Info, err = d.info(v)
		case "paths":
			spec.Paths, err = decodeMap(d, v, "path items", d.pathItem)
			spec.Paths = nilIfEmpty(spec.Paths)
		case "components":
			spec.Components, err = d.components(v)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return spec, nil
}

func (d *decoder) info(n *yaml.Node) (*Info, error) {
	entries, err := d.mapping(n, "info object")
	if err != nil {
		return nil, err
	}
	info := &Info{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "title":
			info.Title, err = d.str(v)
		case "summary":
			info.Summary, err = d.str(v)
		case "description":
			info.Description, err = d.str(v)
		case "termsOfService":
			info.TermsOfService, err = d.str(v)
		case "version":
			info.Version, err = d.str(v)
		default:
			if !d.dialect.CapturesInfoExtensions() {
				return nil
			}
			var value any
			if decodeErr := v.Decode(&value); decodeErr != nil {
				return d.fail(v, "extension value")
			}
			if info.Extra == nil {
				info.Extra = make(map[string]any)
			}
			info.Extra[key] = value
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (d *decoder) components(n *yaml.Node) (*Components, error) {
	entries, err := d.mapping(n, "components object")
	if err != nil {
		return nil, err
	}
	c := &Components{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "schemas":
			c.Schemas, err = decodeMap(d, v, "schemas", d.schemaCell)
		case "responses":
			c.Responses, err = decodeMap(d, v, "responses", d.responseCell)
		case "parameters":
			c.Parameters, err = decodeMap(d, v, "parameters", d.parameterCell)
		case "requestBodies":
			c.RequestBodies, err = decodeMap(d, v, "request bodies", d.requestBody)
		case "headers":
			c.Headers, err = decodeMap(d, v, "headers", d.header)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// pathItem decodes a path item in two passes: the fixed keys first, then
// every remaining key as a method-keyed operation.
func (d *decoder) pathItem(n *yaml.Node) (*PathItem, error) {
	entries, err := d.mapping(n, "path item object")
	if err != nil {
		return nil, err
	}

	item := &PathItem{}
	var methods []entry
	for _, e := range entries {
		switch e.key {
		case "summary", "description", "parameters":
		default:
			if !yamlnode.IsNull(e.value) {
				methods = append(methods, e)
			}
		}
	}

	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "summary":
			item.Summary, err = d.str(v)
		case "description":
			item.Description, err = d.str(v)
		case "parameters":
			item.Parameters, err = decodeList(d, v, "parameters", d.parameterCell)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, e := range methods {
		d.path.Push(e.key)
		if !d.dialect.AllowsMethod(e.key) {
			err := d.fail(e.keyN, "HTTP method ("+allowedMethodList()+")")
			d.path.Pop()
			return nil, err
		}
		op, err := d.operation(e.value)
		d.path.Pop()
		if err != nil {
			return nil, err
		}
		if item.Operations == nil {
			item.Operations = make(map[Method]*Operation, len(methods))
		}
		item.Operations[Method(e.key)] = op
	}
	return item, nil
}

func (d *decoder) operation(n *yaml.Node) (*Operation, error) {
	entries, err := d.mapping(n, "operation object")
	if err != nil {
		return nil, err
	}
	if lookup(entries, "operationId") == nil {
		return nil, d.missing(n, "operationId")
	}

	op := &Operation{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "summary":
			op.Summary, err = d.str(v)
		case "description":
			op.Description, err = d.str(v)
		case "operationId":
			op.OperationID, err = d.str(v)
		case "parameters":
			if d.dialect.ReferenceableOperationParameters() {
				op.Parameters, err = decodeList(d, v, "parameters", d.parameterCell)
			} else {
				op.Parameters, err = decodeList(d, v, "parameters", d.parameterValue)
			}
		case "requestBody":
			op.RequestBody, err = d.requestBody(v)
		case "responses":
			op.Responses, err = decodeMap(d, v, "responses", d.response)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (d *decoder) response(n *yaml.Node) (*Response, error) {
	entries, err := d.inline(n, "response object")
	if err != nil {
		return nil, err
	}
	if lookup(entries, "description") == nil {
		return nil, d.missing(n, "description")
	}

	r := &Response{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "description":
			r.Description, err = d.str(v)
		case "headers":
			r.Headers, err = decodeMap(d, v, "headers", d.headerCell)
		case "content":
			r.Content, err = decodeMap(d, v, "media types", d.mediaType)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (d *decoder) responseCell(n *yaml.Node) (Object[Response], error) {
	return decodeObject(d, n, responseFields, func(n *yaml.Node) (Response, error) {
		r, err := d.response(n)
		if err != nil {
			return Response{}, err
		}
		return *r, nil
	})
}

func (d *decoder) requestBody(n *yaml.Node) (*RequestBody, error) {
	entries, err := d.inline(n, "request body object")
	if err != nil {
		return nil, err
	}
	v := lookup(entries, "content")
	if v == nil {
		return nil, d.missing(n, "content")
	}
	d.path.Push("content")
	content, err := decodeMap(d, v, "media types", d.mediaType)
	d.path.Pop()
	if err != nil {
		return nil, err
	}
	return &RequestBody{Content: nilIfEmpty(content)}, nil
}

func (d *decoder) mediaType(n *yaml.Node) (*MediaType, error) {
	entries, err := d.mapping(n, "media type object")
	if err != nil {
		return nil, err
	}
	v := lookup(entries, "schema")
	if v == nil {
		return nil, d.missing(n, "schema")
	}
	d.path.Push("schema")
	schema, err := d.schemaCell(v)
	d.path.Pop()
	if err != nil {
		return nil, err
	}
	return &MediaType{Schema: schema}, nil
}

func (d *decoder) header(n *yaml.Node) (*Header, error) {
	entries, err := d.inline(n, "header object")
	if err != nil {
		return nil, err
	}
	if lookup(entries, "schema") == nil {
		return nil, d.missing(n, "schema")
	}

	h := &Header{}
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "description":
			h.Description, err = d.str(v)
		case "schema":
			h.Schema, err = d.schema(v)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (d *decoder) headerCell(n *yaml.Node) (Object[Header], error) {
	return decodeObject(d, n, headerFields, func(n *yaml.Node) (Header, error) {
		h, err := d.header(n)
		if err != nil {
			return Header{}, err
		}
		return *h, nil
	})
}

func (d *decoder) parameter(n *yaml.Node) (Parameter, error) {
	entries, err := d.inline(n, "parameter object")
	if err != nil {
		return Parameter{}, err
	}
	for _, field := range []string{"name", "in"} {
		if lookup(entries, field) == nil {
			return Parameter{}, d.missing(n, field)
		}
	}
	if d.dialect.RequiresParameterSchema() && lookup(entries, "schema") == nil {
		return Parameter{}, d.missing(n, "schema")
	}

	var p Parameter
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "name":
			p.Name, err = d.str(v)
		case "in":
			p.In, err = d.str(v)
		case "required":
			var b bool
			if b, err = d.boolean(v); err == nil {
				p.Required = &b
			}
		case "schema":
			var s Object[Schema]
			if d.dialect.ParameterSchemaReferenceable() {
				s, err = d.schemaCell(v)
			} else {
				s, err = d.schemaValue(v)
			}
			if err == nil {
				p.Schema = &s
			}
		case "style":
			p.Style, err = d.str(v)
		}
		return err
	})
	if err != nil {
		return Parameter{}, err
	}
	return p, nil
}

func (d *decoder) parameterCell(n *yaml.Node) (Object[Parameter], error) {
	return decodeObject(d, n, parameterFields, d.parameter)
}

// parameterValue decodes a parameter list entry that must be inline.
func (d *decoder) parameterValue(n *yaml.Node) (Object[Parameter], error) {
	p, err := d.parameter(n)
	if err != nil {
		return Object[Parameter]{}, err
	}
	return ValueOf(p), nil
}

func (d *decoder) schema(n *yaml.Node) (Schema, error) {
	entries, err := d.inline(n, "schema object")
	if err != nil {
		return Schema{}, err
	}
	if lookup(entries, "type") == nil {
		return Schema{}, d.missing(n, "type")
	}

	var s Schema
	err = d.each(entries, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "type":
			var t string
			if t, err = d.str(v); err != nil {
				return err
			}
			if !SchemaType(t).IsValid() {
				return d.fail(v, "one of boolean, object, array, number, string, integer")
			}
			s.Type = SchemaType(t)
		case "format":
			s.Format, err = d.str(v)
		case "items":
			var items Object[Schema]
			if items, err = d.schemaCell(v); err == nil {
				s.Items = &items
			}
		case "properties":
			s.Properties, err = decodeMap(d, v, "schemas", d.schemaCell)
		}
		return err
	})
	if err != nil {
		return Schema{}, err
	}
	return s, nil
}

func (d *decoder) schemaCell(n *yaml.Node) (Object[Schema], error) {
	return decodeObject(d, n, schemaFields, d.schema)
}

// schemaValue decodes a schema slot that must be inline.
func (d *decoder) schemaValue(n *yaml.Node) (Object[Schema], error) {
	s, err := d.schema(n)
	if err != nil {
		return Object[Schema]{}, err
	}
	return ValueOf(s), nil
}
