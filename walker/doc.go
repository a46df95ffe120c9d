// Package walker provides a document traversal API for decoded OpenAPI documents.
//
// The walker visits every node of a [parser.Spec] depth-first, in a stable
// order: info, paths (sorted), then components. Path item operations are
// visited in canonical method order. Reference-or-value cells are reported
// to the ref handler when they hold a $ref and to the typed handler when they
// hold a value; empty cells are skipped.
//
// # Quick Start
//
// Walk a document and collect all operation IDs:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//
//	var operationIDs []string
//	err := walker.Walk(result,
//	    walker.WithOperationHandler(func(wc *walker.WalkContext, op *parser.Operation) walker.Action {
//	        operationIDs = append(operationIDs, op.OperationID)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example using SkipChildren to avoid internal paths:
//
//	walker.Walk(result,
//	    walker.WithPathHandler(func(wc *walker.WalkContext, pathItem *parser.PathItem) walker.Action {
//	        if strings.HasPrefix(wc.PathTemplate, "/internal") {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # References
//
// The walker never resolves references. [WithRefHandler] reports each $ref
// with the JSON path where it occurs and the kind of node it stands for;
// [CollectRefs] gathers them all.
//
// # JSON Paths
//
// [WalkContext.JSONPath] uses bracket notation for map keys:
//
//	$.paths['/pets'].get.responses['200'].content['application/json'].schema
//	$.components.schemas['Pet'].properties['name']
package walker
