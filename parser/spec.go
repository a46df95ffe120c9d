package parser

// Spec is the root of an OpenAPI 3.x document.
//
// A Spec is built once by Decode and treated as read-only afterwards; it is
// safe to share between goroutines that only read it.
type Spec struct {
	// OpenAPI is the openapi version string (required)
	OpenAPI string
	// Info is the optional metadata block
	Info *Info
	// Paths maps URL path templates to path items. Encoded in lexical order.
	Paths map[string]*PathItem
	// Components holds reusable definitions
	Components *Components
}

// Info is the document metadata block.
type Info struct {
	Title          string
	Summary        string
	Description    string
	TermsOfService string
	Version        string

	// Extra holds keys outside the fixed fields (e.g., "x-internal-id").
	// Only the loose dialect populates it; the values are kept verbatim
	// as decoded generic values and re-emitted after the fixed fields.
	Extra map[string]any
}

// Components holds the reusable definitions of a document, keyed by name.
type Components struct {
	Schemas       map[string]Object[Schema]
	Responses     map[string]Object[Response]
	Parameters    map[string]Object[Parameter]
	RequestBodies map[string]*RequestBody
	Headers       map[string]*Header
}

// Operation returns the operation at path for method, if present.
func (s *Spec) Operation(path string, method Method) (*Operation, bool) {
	if s == nil {
		return nil, false
	}
	item, ok := s.Paths[path]
	if !ok || item == nil {
		return nil, false
	}
	op, ok := item.Operations[method]
	return op, ok && op != nil
}
