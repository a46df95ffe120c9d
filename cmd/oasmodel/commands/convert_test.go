package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/parser"
)

func TestHandleConvert_YAMLToJSON(t *testing.T) {
	streams, out, errOut := newTestStreams(petAPIYAML)

	require.NoError(t, HandleConvert([]string{"-"}, streams))
	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.Contains(t, errOut.String(), "Converted <stdin> (yaml, strict dialect) to json: stdout")

	original, err := parser.Decode([]byte(petAPIYAML), parser.SourceFormatYAML, parser.DialectAuto)
	require.NoError(t, err)
	converted, err := parser.Decode(out.Bytes(), parser.SourceFormatJSON, parser.DialectAuto)
	require.NoError(t, err)
	assert.Equal(t, original, converted)
}

func TestHandleConvert_JSONToYAMLFile(t *testing.T) {
	streams, out, errOut := newTestStreams("")
	outPath := filepath.Join(t.TempDir(), "petstore.yaml")

	require.NoError(t, HandleConvert([]string{"-o", outPath, "../../../parser/testdata/petstore.json"}, streams))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "to yaml: "+outPath)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	spec, err := parser.Decode(data, parser.SourceFormatYAML, parser.DialectAuto)
	require.NoError(t, err)
	_, ok := spec.Operation("/pets", parser.MethodGet)
	assert.True(t, ok)
}

func TestHandleConvert_ExplicitTarget(t *testing.T) {
	streams, out, errOut := newTestStreams(searchAPIYAML)

	require.NoError(t, HandleConvert([]string{"-q", "-t", "yaml", "-"}, streams))
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "query:")
	assert.Contains(t, out.String(), "operationId: querySearch")
}

func TestHandleConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no arguments", nil, "requires exactly one file path"},
		{"bad target", []string{"-t", "toml", "-"}, "unknown format"},
		{"bad dialect", []string{"--dialect", "relaxed", "-"}, "unknown dialect"},
		{"missing output directory", []string{"-o", "/nonexistent/dir/out.json", "-"}, "parent directory does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streams, _, _ := newTestStreams(petAPIYAML)
			err := HandleConvert(tt.args, streams)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOppositeFormat(t *testing.T) {
	assert.Equal(t, parser.SourceFormatJSON, oppositeFormat(parser.SourceFormatYAML))
	assert.Equal(t, parser.SourceFormatYAML, oppositeFormat(parser.SourceFormatJSON))
}
