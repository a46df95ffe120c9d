// Package oasmodel provides a typed, lossless in-memory model of OpenAPI 3.x
// documents.
//
// A document is decoded from JSON or YAML into a [parser.Spec] tree and can be
// encoded back to either form. Every slot where OpenAPI allows an inline
// object or a $ref is a [parser.Object] cell holding exactly one of a value, a
// reference, or nothing. References are recorded, never resolved.
//
// # Packages
//
//   - parser: the document model, its decoder and encoder, and the Parser front end
//   - walker: depth-first traversal reporting every $ref with its location
//   - oaserrors: typed errors shared by the other packages
//   - cmd/oasmodel: command line front end (parse, convert, refs, mcp)
//
// The oasmodel mcp command serves the decode, encode, walk_refs and
// lookup_ref tools over stdio to MCP clients.
//
// # Dialects
//
// Two dialects share one model. [parser.DialectStrict] follows OAS 3.0: a
// closed set of HTTP methods and concrete operation parameters.
// [parser.DialectLoose] follows OAS 3.1: any extra path item key is an
// operation, parameter entries may be references, and unknown info keys are
// kept.
//
// # Quick Start
//
//	import "github.com/erraggy/oasmodel/parser"
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s, dialect: %s\n", result.Version, result.Dialect)
//
//	out, err := parser.Encode(result.Spec, parser.SourceFormatJSON)
//
// # Installation
//
//	go install github.com/erraggy/oasmodel/cmd/oasmodel@latest
package oasmodel
