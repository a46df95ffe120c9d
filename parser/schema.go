package parser

// SchemaType is the type tag of a Schema.
type SchemaType string

// Schema type tags.
const (
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeObject  SchemaType = "object"
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeString  SchemaType = "string"
	SchemaTypeInteger SchemaType = "integer"
)

var schemaTypes = []SchemaType{
	SchemaTypeBoolean,
	SchemaTypeObject,
	SchemaTypeArray,
	SchemaTypeNumber,
	SchemaTypeString,
	SchemaTypeInteger,
}

// IsValid reports whether t is one of the six schema type tags.
func (t SchemaType) IsValid() bool {
	for _, st := range schemaTypes {
		if t == st {
			return true
		}
	}
	return false
}

// Schema is a (recursive) data type definition.
//
// Nested schemas are reference-or-value cells, so a nested $ref is kept as
// a Reference and never decoded as an inline schema.
type Schema struct {
	// Type is required
	Type   SchemaType
	Format string
	// Items is the element schema of an array type.
	Items *Object[Schema]
	// Properties maps property names to schemas of an object type.
	Properties map[string]Object[Schema]
}
