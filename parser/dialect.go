package parser

import (
	"fmt"
	"strings"
)

// Dialect selects the decoding rules applied to a document. Both dialects
// share one model; they differ only in which shapes the decoder accepts.
//
//	capability                   strict (3.0.x)        loose (3.1+)
//	path item method keys        closed set of 8       any extra key
//	unknown info keys            dropped               kept in Info.Extra
//	operation parameters         concrete values       reference-or-value
//	Parameter.schema             optional, concrete    required, reference-or-value
type Dialect int

const (
	// DialectAuto selects the dialect from the document's openapi version.
	DialectAuto Dialect = iota
	// DialectStrict follows OpenAPI 3.0.x.
	DialectStrict
	// DialectLoose follows OpenAPI 3.1 and later.
	DialectLoose
)

func (d Dialect) String() string {
	switch d {
	case DialectStrict:
		return "strict"
	case DialectLoose:
		return "loose"
	default:
		return "auto"
	}
}

// ParseDialect parses a dialect name ("auto", "strict", "loose"), case-insensitively.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DialectAuto, nil
	case "strict":
		return DialectStrict, nil
	case "loose":
		return DialectLoose, nil
	default:
		return DialectAuto, fmt.Errorf("parser: unknown dialect %q (want auto, strict or loose)", s)
	}
}

// ClosedMethods reports whether path item method keys are limited to the
// eight standard HTTP methods.
func (d Dialect) ClosedMethods() bool {
	return d != DialectLoose
}

// AllowsMethod reports whether key may be decoded as an operation of a path item.
func (d Dialect) AllowsMethod(key string) bool {
	if !d.ClosedMethods() {
		return true
	}
	return Method(key).IsStandard()
}

// CapturesInfoExtensions reports whether unknown info keys are kept in Info.Extra.
func (d Dialect) CapturesInfoExtensions() bool {
	return d == DialectLoose
}

// ReferenceableOperationParameters reports whether operation parameter entries
// may be references.
func (d Dialect) ReferenceableOperationParameters() bool {
	return d == DialectLoose
}

// RequiresParameterSchema reports whether Parameter.schema must be present.
func (d Dialect) RequiresParameterSchema() bool {
	return d == DialectLoose
}

// ParameterSchemaReferenceable reports whether Parameter.schema may be a
// reference or an empty object.
func (d Dialect) ParameterSchemaReferenceable() bool {
	return d == DialectLoose
}

// DialectForVersion maps an openapi version string to its dialect:
// 3.0.x selects DialectStrict, 3.1 and later select DialectLoose.
func DialectForVersion(v string) (Dialect, error) {
	ver, err := parseVersion(v)
	if err != nil {
		return DialectAuto, err
	}
	if ver.major != 3 {
		return DialectAuto, fmt.Errorf("unsupported OpenAPI version %q", v)
	}
	if ver.minor == 0 {
		return DialectStrict, nil
	}
	return DialectLoose, nil
}
