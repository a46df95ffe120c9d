package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/walker"
)

func walkRefs(t *testing.T, input walkRefsInput) walkRefsOutput {
	t.Helper()
	if input.Spec == (specInput{}) {
		input.Spec = specInput{Content: testSpecYAML}
	}
	result, output, err := handleWalkRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result, "unexpected tool error")
	return output
}

func TestWalkRefs_Summary(t *testing.T) {
	output := walkRefs(t, walkRefsInput{})

	assert.Equal(t, 4, output.Total)
	assert.Equal(t, 4, output.Matched)
	assert.Equal(t, 4, output.Returned)
	assert.Equal(t, []refSummary{
		{Ref: "#/components/schemas/Pet", Count: 5},
		{Ref: "#/components/parameters/PetId", Count: 1},
		{Ref: "#/components/schemas/Error", Count: 1},
		{Ref: "#/components/schemas/Pets", Count: 1},
	}, output.Summaries)
	assert.Empty(t, output.Details)
	assert.Empty(t, output.Groups)
}

func TestWalkRefs_Detail(t *testing.T) {
	output := walkRefs(t, walkRefsInput{Detail: true})

	assert.Equal(t, 8, output.Total)
	assert.Equal(t, 8, output.Matched)
	require.Len(t, output.Details, 8)

	refs := make([]string, 0, len(output.Details))
	for _, d := range output.Details {
		refs = append(refs, d.Ref)
	}
	assert.Equal(t, []string{
		"#/components/schemas/Pets",
		"#/components/schemas/Error",
		"#/components/schemas/Pet",
		"#/components/parameters/PetId",
		"#/components/schemas/Pet",
		"#/components/schemas/Pet",
		"#/components/schemas/Pet",
		"#/components/schemas/Pet",
	}, refs)

	first := output.Details[0]
	assert.Equal(t, "$.paths['/pets'].get.responses['200'].content['application/json'].schema", first.SourcePath)
	assert.Equal(t, string(walker.RefNodeSchema), first.NodeType)
	assert.Equal(t, string(walker.RefNodeParameter), output.Details[3].NodeType)
}

func TestWalkRefs_DetailDefaultLimit(t *testing.T) {
	saved := cfg.RefDetailLimit
	cfg.RefDetailLimit = 3
	t.Cleanup(func() { cfg.RefDetailLimit = saved })

	output := walkRefs(t, walkRefsInput{Detail: true})
	assert.Equal(t, 8, output.Matched)
	assert.Equal(t, 3, output.Returned)
}

func TestWalkRefs_TargetFilter(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantMatched int
	}{
		{"exact", "#/components/schemas/Pet", 1},
		{"exact is case-insensitive", "#/COMPONENTS/schemas/pet", 1},
		{"glob across separators", "*schemas/Pet*", 2},
		{"all schemas", "#/components/schemas/*", 3},
		{"parameters", "*parameters/*", 1},
		{"no match", "*responses/*", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := walkRefs(t, walkRefsInput{Target: tt.target})
			assert.Equal(t, 4, output.Total)
			assert.Equal(t, tt.wantMatched, output.Matched)
		})
	}
}

func TestWalkRefs_NodeTypeFilter(t *testing.T) {
	output := walkRefs(t, walkRefsInput{NodeType: "parameter", Detail: true})
	assert.Equal(t, 1, output.Matched)
	require.Len(t, output.Details, 1)
	assert.Equal(t, "$.paths['/pets/{id}'].parameters[0]", output.Details[0].SourcePath)
}

func TestWalkRefs_GroupByNodeType(t *testing.T) {
	output := walkRefs(t, walkRefsInput{GroupBy: "node_type"})
	assert.Equal(t, 8, output.Total)
	assert.Equal(t, 8, output.Matched)
	assert.Equal(t, []groupCount{
		{Key: "schema", Count: 7},
		{Key: "parameter", Count: 1},
	}, output.Groups)
}

func TestWalkRefs_Pagination(t *testing.T) {
	output := walkRefs(t, walkRefsInput{Limit: 2, Offset: 1})
	assert.Equal(t, 4, output.Matched)
	assert.Equal(t, 2, output.Returned)
	require.Len(t, output.Summaries, 2)
	assert.Equal(t, "#/components/parameters/PetId", output.Summaries[0].Ref)
}

func TestWalkRefs_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		input   walkRefsInput
		wantErr string
	}{
		{"bad glob", walkRefsInput{Target: "[a-"}, "invalid glob pattern"},
		{"bad group_by", walkRefsInput{GroupBy: "method"}, "invalid group_by value"},
		{"group_by with detail", walkRefsInput{GroupBy: "node_type", Detail: true}, "cannot use both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Spec = specInput{Content: testSpecYAML}
			result, _, err := handleWalkRefs(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantErr)
		})
	}
}

func TestMatchRefGlob(t *testing.T) {
	tests := []struct {
		ref     string
		pattern string
		want    bool
	}{
		{"#/components/schemas/Pet", "#/components/schemas/Pet", true},
		{"#/components/schemas/Pet", "#/components/schemas/pet", true},
		{"#/components/schemas/Pet", "*Pet", true},
		{"#/components/schemas/Pets", "*Pet", false},
		{"#/components/schemas/Pets", "*Pet?", true},
		{"#/components/parameters/PetId", "*schemas/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, matchRefGlob(tt.ref, tt.pattern))
		})
	}
}
