// Package parser provides a typed model of OpenAPI 3.x documents with a
// decoder and encoder for JSON and YAML.
//
// # The Model
//
// A [Spec] is a tree of plain structs. Every slot where OpenAPI allows an
// inline object or a $ref is an [Object] cell with exactly one active
// variant:
//
//	switch cell.Kind() {
//	case parser.KindValue:
//		schema, _ := cell.Value()
//	case parser.KindReference:
//		ref, _ := cell.Reference() // ref.Ref == "#/components/schemas/Pet"
//	case parser.KindEmpty:
//		// the input was {} or carried neither fields nor a $ref
//	}
//
// References are never resolved. A consumer that needs the target looks it
// up in [Components] by name.
//
// # Decoding
//
// [Decode] takes a complete buffer, a [SourceFormat] and a [Dialect]:
//
//	spec, err := parser.Decode(data, parser.SourceFormatAuto, parser.DialectAuto)
//
// A cell tries the inline value first, then a reference, then Empty. A
// mapping with a $ref key never decodes as an inline value. Required fields
// that are absent, and fields with the wrong shape, produce an
// *oaserrors.DecodeError naming the path (e.g., "components.schemas.Pet")
// and the field. Malformed text produces an *oaserrors.ParseError.
//
// # Dialects
//
// [DialectStrict] (OAS 3.0) accepts only the eight standard methods as path
// item keys, drops unknown info keys, and requires inline operation
// parameters. [DialectLoose] (OAS 3.1+) treats every extra path item key as
// an operation, keeps unknown info keys in Info.Extra, and allows
// referenced parameters. [DialectAuto] picks one from the openapi version.
//
// # Encoding
//
// [Encode] writes fields in a fixed order per entity, map keys in lexical
// order, and operations in canonical method order (get, put, post, delete,
// head, patch, options, trace, then other keys). Decoding the output
// yields an equal Spec.
//
// # Parser Front End
//
// [ParseWithOptions] and [Parser] read files, URLs, readers and byte
// slices, detect the format, cap the input's nesting depth and size, and
// return a [ParseResult] with the document, its version, dialect,
// statistics and warnings:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//		parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
package parser
