package parser

// Parameter describes a single operation parameter.
type Parameter struct {
	// Name is required
	Name string
	// In is the parameter location: "query", "header", "path" or "cookie".
	// Required; spelled "in" on the wire.
	In       string
	Required *bool
	// Schema is optional and always a value in the strict dialect, and
	// required (value, reference or empty) in the loose dialect.
	Schema *Object[Schema]
	Style  string
}
