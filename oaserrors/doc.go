// Package oaserrors provides structured error types for the oasmodel library.
//
// Import path: github.com/erraggy/oasmodel/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell malformed text apart from well-formed text that does not
// describe a valid document tree.
//
// # Error Types
//
//   - [ParseError]: the input is not well-formed JSON or YAML
//   - [DecodeError]: a required field is missing or a node has the wrong shape
//   - [ReferenceError]: a consumer could not match a $ref to a component
//   - [ResourceLimitError]: the input exceeded a configured limit
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrDecode]: Matches any [DecodeError]
//   - [ErrMissingField]: Matches [DecodeError] with Missing=true
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	spec, err := parser.Decode(data, parser.SourceFormatYAML, parser.DialectStrict)
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // not JSON or YAML at all
//	}
//
// Extract error details with errors.As():
//
//	var decErr *oaserrors.DecodeError
//	if errors.As(err, &decErr) {
//	    fmt.Printf("bad node at %s (line %d)\n", decErr.Pointer(), decErr.Line)
//	    if decErr.Missing {
//	        fmt.Printf("missing field %q\n", decErr.Field)
//	    }
//	}
//
// A decode never yields a partial document: when an error is returned the
// document is nil.
package oaserrors
