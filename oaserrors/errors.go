package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates the input text is not well-formed JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrDecode indicates a structural decode failure.
	ErrDecode = errors.New("decode error")

	// ErrMissingField indicates a required field was absent.
	ErrMissingField = errors.New("missing required field")

	// ErrReference indicates a $ref could not be matched to a component.
	ErrReference = errors.New("reference error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents input that is not well-formed JSON or YAML.
// The Cause is the error produced by the underlying text parser, unchanged.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DecodeError represents a structural decode failure: a required field is
// missing, or a node does not have the shape expected at its position.
type DecodeError struct {
	// Path is the dotted path of the enclosing node (e.g., "components.schemas.Pet").
	// An empty Path means the document root.
	Path string
	// Field is the offending field name. For a missing field it names the
	// absent key; for a shape mismatch it is the last path segment, if any.
	Field string
	// Missing is true when Field is a required field that was absent.
	Missing bool
	// Expected describes the shape that was expected (e.g., "string", "mapping").
	Expected string
	// Actual is a compact rendering of the offending input fragment.
	Actual string
	// Line and Column locate the offending node in the source (0 if unknown).
	Line   int
	Column int

	pointer string
}

// NewDecodeError creates a DecodeError located at path, with pointer being the
// same location rendered as an RFC 6901 JSON pointer. Keys containing dots make
// the dotted path ambiguous; the pointer is not.
func NewDecodeError(path, pointer string) *DecodeError {
	return &DecodeError{Path: path, pointer: pointer}
}

// Pointer returns the location as a JSON pointer (e.g., "/components/schemas/Pet").
func (e *DecodeError) Pointer() string {
	if e.pointer != "" || e.Path == "" {
		return e.pointer
	}
	var b strings.Builder
	for _, s := range strings.Split(e.Path, ".") {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		b.WriteString(strings.ReplaceAll(s, "/", "~1"))
	}
	return b.String()
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode error")
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	} else {
		b.WriteString(" at document root")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	if e.Missing {
		fmt.Fprintf(&b, ": missing required field %q", e.Field)
		return b.String()
	}
	if e.Expected != "" {
		b.WriteString(": expected ")
		b.WriteString(e.Expected)
	}
	if e.Actual != "" {
		b.WriteString(", got ")
		b.WriteString(e.Actual)
	}
	return b.String()
}

// Is reports whether target matches this error type.
// Matches ErrDecode, and also ErrMissingField when Missing is set.
func (e *DecodeError) Is(target error) bool {
	if target == ErrDecode {
		return true
	}
	return target == ErrMissingField && e.Missing
}

// ReferenceError represents a $ref that names no existing component.
// The parser never returns it; consumers that look references up do.
type ReferenceError struct {
	// Ref is the reference string that failed to match
	Ref string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded (e.g., "nesting_depth")
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
