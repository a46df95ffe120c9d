package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strictQueryMethodYAML = `openapi: "3.0.3"
info:
  title: Search
  version: "1"
paths:
  /search:
    query:
      operationId: querySearch
      responses:
        "200":
          description: OK
`

func TestDecodeTool_Summary(t *testing.T) {
	specCache.reset()
	input := decodeInput{Spec: specInput{Content: testSpecYAML}}

	result, output, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, "3.0.3", output.OpenAPI)
	assert.Equal(t, "strict", output.Dialect)
	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, "Pet API", output.Title)
	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, "Test document", output.Description)
	assert.Equal(t, 2, output.PathCount)
	assert.Equal(t, 3, output.OperationCount)
	assert.Equal(t, 4, output.SchemaCount)
	assert.Equal(t, 8, output.ComponentCount)
	assert.Equal(t, 8, output.ReferenceCount)
	assert.Empty(t, output.Warnings)

	assert.Equal(t, []operationSummary{
		{Method: "get", Path: "/pets", OperationID: "listPets", Responses: []string{"200", "default"}},
		{Method: "post", Path: "/pets", OperationID: "createPet", Responses: []string{"201"}},
		{Method: "get", Path: "/pets/{id}", OperationID: "getPet", Responses: []string{"200"}},
	}, output.Operations)
}

func TestDecodeTool_File(t *testing.T) {
	specCache.reset()
	input := decodeInput{Spec: specInput{File: "../../parser/testdata/petstore.json"}}

	result, output, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "json", output.Format)
	assert.NotEmpty(t, output.Operations)
}

func TestDecodeTool_StrictRejectsOpenMethod(t *testing.T) {
	specCache.reset()
	input := decodeInput{Spec: specInput{Content: strictQueryMethodYAML}}

	result, _, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "decode error")
	assert.Contains(t, text, "(pointer /paths/")
}

func TestDecodeTool_LooseDialectOverride(t *testing.T) {
	specCache.reset()
	input := decodeInput{Spec: specInput{Content: strictQueryMethodYAML}, Dialect: "loose"}

	result, output, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "loose", output.Dialect)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, "query", output.Operations[0].Method)
	assert.Equal(t, 0, specCache.size(), "per-call options skip the cache")
}

func TestDecodeTool_FormatOverride(t *testing.T) {
	specCache.reset()
	input := decodeInput{Spec: specInput{Content: testSpecYAML}, Format: "json"}

	result, _, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid json")
}

func TestDecodeTool_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		input   decodeInput
		wantErr string
	}{
		{
			name:    "unknown dialect",
			input:   decodeInput{Spec: specInput{Content: testSpecYAML}, Dialect: "relaxed"},
			wantErr: "unknown dialect",
		},
		{
			name:    "no input source",
			input:   decodeInput{},
			wantErr: "exactly one of file, url, or content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleDecode(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantErr)
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	opts, err := decodeOptions("", "")
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = decodeOptions("strict", "yaml")
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = decodeOptions("", "toml")
	assert.Error(t, err)
}
