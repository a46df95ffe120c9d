package parser

// PathItem describes the operations available on a single path template.
//
// On the wire the operations are flattened into the path item mapping as
// siblings of summary, description and parameters.
type PathItem struct {
	Summary     string
	Description string
	// Parameters apply to every operation under this path.
	Parameters []Object[Parameter]
	// Operations maps method keys to operations. In the strict dialect the
	// keys are limited to the eight standard methods.
	Operations map[Method]*Operation
}

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string
	Description string
	// OperationID is required. Uniqueness across the document is not checked.
	OperationID string
	// Parameters are concrete values in the strict dialect and may be
	// references in the loose dialect.
	Parameters  []Object[Parameter]
	RequestBody *RequestBody
	// Responses maps status codes ("200", "4XX", "default") to responses.
	Responses map[string]*Response
}

// Response describes a single response from an API operation.
type Response struct {
	// Description is required
	Description string
	Headers     map[string]Object[Header]
	Content     map[string]*MediaType
}

// RequestBody describes a single request body.
type RequestBody struct {
	// Content is required
	Content map[string]*MediaType
}

// Header describes a response header.
type Header struct {
	Description string
	// Schema is required and always inline.
	Schema Schema
}

// MediaType wraps the schema of a body for one content type.
type MediaType struct {
	// Schema is required
	Schema Object[Schema]
}
