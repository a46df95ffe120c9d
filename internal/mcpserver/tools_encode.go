package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/internal/fileutil"
	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/parser"
)

type encodeInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The OpenAPI 3.x document to re-encode"`
	Format  string    `json:"format,omitempty"  jsonschema:"Output format: json or yaml (default: the input format)"`
	Dialect string    `json:"dialect,omitempty" jsonschema:"Decoding rules: auto (default), strict or loose"`
	Output  string    `json:"output,omitempty"  jsonschema:"File path to write the encoded document. If omitted the document is returned inline."`
}

type encodeOutput struct {
	SourceFormat string `json:"source_format"`
	TargetFormat string `json:"target_format"`
	Dialect      string `json:"dialect"`
	Size         int    `json:"size"`
	Document     string `json:"document,omitempty"`
	WrittenTo    string `json:"written_to,omitempty"`
}

func handleEncode(_ context.Context, _ *mcp.CallToolRequest, input encodeInput) (*mcp.CallToolResult, encodeOutput, error) {
	target := parser.SourceFormatAuto
	if input.Format != "" {
		f, err := parser.ParseSourceFormat(input.Format)
		if err != nil {
			return errResult(err), encodeOutput{}, nil
		}
		target = f
	}

	opts, err := decodeOptions(input.Dialect, "")
	if err != nil {
		return errResult(err), encodeOutput{}, nil
	}
	result, err := input.Spec.resolve(opts...)
	if err != nil {
		return decodeErrResult(err), encodeOutput{}, nil
	}

	if target == parser.SourceFormatAuto {
		target = result.SourceFormat
	}
	data, err := result.Marshal(target)
	if err != nil {
		return errResult(fmt.Errorf("encoding document: %w", err)), encodeOutput{}, nil
	}

	output := encodeOutput{
		SourceFormat: string(result.SourceFormat),
		TargetFormat: string(target),
		Dialect:      result.Dialect.String(),
		Size:         len(data),
	}

	if input.Output != "" {
		path, err := pathutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), encodeOutput{}, nil
		}
		if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), encodeOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
