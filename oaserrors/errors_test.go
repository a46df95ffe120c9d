package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrDecode) {
			t.Error("ParseError should not match ErrDecode")
		}
	})

	t.Run("As extracts wrapped ParseError", func(t *testing.T) {
		original := &ParseError{Path: "api.yaml", Line: 3}
		wrapped := fmt.Errorf("parser: %w", original)

		var target *ParseError
		if !errors.As(wrapped, &target) {
			t.Fatal("errors.As should extract ParseError")
		}
		if target.Line != 3 {
			t.Errorf("expected line 3, got %d", target.Line)
		}
	})
}

func TestDecodeError(t *testing.T) {
	t.Run("Missing field message", func(t *testing.T) {
		err := NewDecodeError("components.schemas.Pet", "/components/schemas/Pet")
		err.Field = "type"
		err.Missing = true
		err.Line = 4
		err.Column = 5

		want := `decode error at components.schemas.Pet (line 4, column 5): missing required field "type"`
		if err.Error() != want {
			t.Errorf("unexpected error message:\n got: %s\nwant: %s", err.Error(), want)
		}
	})

	t.Run("Shape mismatch message", func(t *testing.T) {
		err := NewDecodeError("paths./pets.get.operationId", "/paths/~1pets/get/operationId")
		err.Field = "operationId"
		err.Expected = "string"
		err.Actual = "mapping {}"

		want := "decode error at paths./pets.get.operationId: expected string, got mapping {}"
		if err.Error() != want {
			t.Errorf("unexpected error message:\n got: %s\nwant: %s", err.Error(), want)
		}
	})

	t.Run("Root path message", func(t *testing.T) {
		err := NewDecodeError("", "")
		err.Field = "openapi"
		err.Missing = true
		want := `decode error at document root: missing required field "openapi"`
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Pointer prefers the explicit pointer", func(t *testing.T) {
		err := NewDecodeError("components.schemas.a.b", "/components/schemas/a.b")
		if got := err.Pointer(); got != "/components/schemas/a.b" {
			t.Errorf("unexpected pointer: %s", got)
		}
	})

	t.Run("Pointer derived from Path escapes segments", func(t *testing.T) {
		err := &DecodeError{Path: "paths./pets~v2.get"}
		if got := err.Pointer(); got != "/paths/~1pets~0v2/get" {
			t.Errorf("unexpected pointer: %s", got)
		}
	})

	t.Run("Is matches sentinels", func(t *testing.T) {
		missing := &DecodeError{Field: "type", Missing: true}
		shape := &DecodeError{Field: "type", Expected: "string"}

		if !errors.Is(missing, ErrDecode) || !errors.Is(missing, ErrMissingField) {
			t.Error("missing-field DecodeError should match ErrDecode and ErrMissingField")
		}
		if !errors.Is(shape, ErrDecode) {
			t.Error("shape DecodeError should match ErrDecode")
		}
		if errors.Is(shape, ErrMissingField) {
			t.Error("shape DecodeError should not match ErrMissingField")
		}
		if errors.Is(shape, ErrParse) {
			t.Error("DecodeError should not match ErrParse")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/components/schemas/Missing", Message: "no such component"}
		if err.Error() != "reference error: #/components/schemas/Missing: no such component" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("root")
		err := &ReferenceError{Cause: cause}
		if !errors.Is(err, ErrReference) {
			t.Error("ReferenceError should match ErrReference")
		}
		if !errors.Is(err, cause) {
			t.Error("ReferenceError should unwrap to its cause")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        256,
			Actual:       300,
			Message:      "input nested too deeply",
		}
		want := "resource limit exceeded: nesting_depth (limit: 256, actual: 300): input nested too deeply"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message minimal", func(t *testing.T) {
		err := &ResourceLimitError{}
		if err.Error() != "resource limit exceeded" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrResourceLimit", func(t *testing.T) {
		if !errors.Is(&ResourceLimitError{}, ErrResourceLimit) {
			t.Error("ResourceLimitError should match ErrResourceLimit")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{
			Option:  "dialect",
			Value:   "relaxed",
			Message: "unknown dialect",
		}
		want := "configuration error for dialect (value: relaxed): unknown dialect"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ConfigError{Option: "format"})
		if !errors.Is(err, ErrConfig) {
			t.Error("wrapped ConfigError should match ErrConfig")
		}
	})
}
