package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/walker"
)

type decodeInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The OpenAPI 3.x document to decode"`
	Dialect string    `json:"dialect,omitempty" jsonschema:"Decoding rules: auto (default, from the openapi version), strict (3.0.x) or loose (3.1+)"`
	Format  string    `json:"format,omitempty"  jsonschema:"Input syntax: auto (default), json or yaml"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id"`
	Responses   []string `json:"responses,omitempty"`
}

type decodeOutput struct {
	OpenAPI        string             `json:"openapi"`
	Dialect        string             `json:"dialect"`
	Format         string             `json:"format"`
	Title          string             `json:"title,omitempty"`
	Version        string             `json:"version,omitempty"`
	Description    string             `json:"description,omitempty"`
	PathCount      int                `json:"path_count"`
	OperationCount int                `json:"operation_count"`
	SchemaCount    int                `json:"schema_count"`
	ComponentCount int                `json:"component_count"`
	ReferenceCount int                `json:"reference_count"`
	Operations     []operationSummary `json:"operations,omitempty"`
	Warnings       []string           `json:"warnings,omitempty"`
}

func handleDecode(_ context.Context, _ *mcp.CallToolRequest, input decodeInput) (*mcp.CallToolResult, decodeOutput, error) {
	opts, err := decodeOptions(input.Dialect, input.Format)
	if err != nil {
		return errResult(err), decodeOutput{}, nil
	}

	result, err := input.Spec.resolve(opts...)
	if err != nil {
		return decodeErrResult(err), decodeOutput{}, nil
	}

	output := decodeOutput{
		OpenAPI:        result.Version,
		Dialect:        result.Dialect.String(),
		Format:         string(result.SourceFormat),
		PathCount:      result.Stats.PathCount,
		OperationCount: result.Stats.OperationCount,
		SchemaCount:    result.Stats.SchemaCount,
		ComponentCount: result.Stats.ComponentCount,
		ReferenceCount: result.Stats.ReferenceCount,
		Warnings:       result.Warnings,
	}
	if info := result.Spec.Info; info != nil {
		output.Title = info.Title
		output.Version = info.Version
		output.Description = info.Description
	}

	ops, err := walker.CollectOperations(result.Spec)
	if err != nil {
		return errResult(err), decodeOutput{}, nil
	}
	output.Operations = makeSlice[operationSummary](len(ops.All))
	for _, op := range ops.All {
		output.Operations = append(output.Operations, operationSummary{
			Method:      op.Method,
			Path:        op.PathTemplate,
			OperationID: op.Operation.OperationID,
			Responses:   maputil.SortedKeys(op.Operation.Responses),
		})
	}

	return nil, output, nil
}

// decodeOptions turns the optional dialect and format arguments into
// per-call parser options. Empty arguments add nothing, so the call can
// still use the cache.
func decodeOptions(dialect, format string) ([]parser.Option, error) {
	var opts []parser.Option
	if dialect != "" {
		d, err := parser.ParseDialect(dialect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithDialect(d))
	}
	if format != "" {
		f, err := parser.ParseSourceFormat(format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithFormat(f))
	}
	return opts, nil
}

// decodeErrResult is errResult with the JSON pointer of a decode failure
// appended, since dotted paths are ambiguous for keys containing dots.
func decodeErrResult(err error) *mcp.CallToolResult {
	var decodeErr *oaserrors.DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Pointer() != "" {
		return errResult(fmt.Errorf("%w (pointer %s)", err, decodeErr.Pointer()))
	}
	return errResult(err)
}
