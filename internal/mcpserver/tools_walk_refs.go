package mcpserver

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/walker"
)

type walkRefsInput struct {
	Spec     specInput `json:"spec"                jsonschema:"The OpenAPI 3.x document to walk"`
	Target   string    `json:"target,omitempty"    jsonschema:"Filter by ref target (supports * and ? glob, e.g. *schemas/Pet or *responses/*)"`
	NodeType string    `json:"node_type,omitempty" jsonschema:"Filter by ref node type: schema, parameter, response, header"`
	Detail   bool      `json:"detail,omitempty"    jsonschema:"Return individual source locations instead of aggregated counts"`
	GroupBy  string    `json:"group_by,omitempty"  jsonschema:"Group results and return counts instead of individual items. Values: node_type"`
	Limit    int       `json:"limit,omitempty"     jsonschema:"Maximum number of results to return (default 100; 25 in detail mode)"`
	Offset   int       `json:"offset,omitempty"    jsonschema:"Skip the first N results (for pagination)"`
}

type refSummary struct {
	Ref   string `json:"ref"`
	Count int    `json:"count"`
}

type refDetail struct {
	Ref         string `json:"ref"`
	Description string `json:"description,omitempty"`
	SourcePath  string `json:"source_path"`
	NodeType    string `json:"node_type"`
}

// walkRefsOutput holds results from walk_refs. In summary mode, Total and
// Matched count unique ref targets. In detail and group_by modes, they count
// individual ref occurrences (a single target referenced 3 times counts as 3).
type walkRefsOutput struct {
	Total     int          `json:"total"`
	Matched   int          `json:"matched"`
	Returned  int          `json:"returned"`
	Summaries []refSummary `json:"refs,omitempty"`
	Details   []refDetail  `json:"details,omitempty"`
	Groups    []groupCount `json:"groups,omitempty"`
}

func handleWalkRefs(_ context.Context, _ *mcp.CallToolRequest, input walkRefsInput) (*mcp.CallToolResult, walkRefsOutput, error) {
	if err := validateGlobPattern(input.Target); err != nil {
		return errResult(err), walkRefsOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"node_type"}); err != nil {
		return errResult(err), walkRefsOutput{}, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return decodeErrResult(err), walkRefsOutput{}, nil
	}

	refs, err := walker.CollectRefs(result.Spec)
	if err != nil {
		return errResult(err), walkRefsOutput{}, nil
	}
	filtered := filterRefs(refs.All, input)

	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(ref *walker.RefInfo) string {
			return string(ref.NodeType)
		})
		paged := paginate(groups, input.Offset, input.Limit)
		return nil, walkRefsOutput{
			Total:    len(refs.All),
			Matched:  len(filtered),
			Returned: len(paged),
			Groups:   paged,
		}, nil
	}

	if input.Detail {
		paged := paginate(filtered, input.Offset, detailLimit(input.Limit))
		output := walkRefsOutput{
			Total:    len(refs.All),
			Matched:  len(filtered),
			Returned: len(paged),
			Details:  makeSlice[refDetail](len(paged)),
		}
		for _, ref := range paged {
			output.Details = append(output.Details, refDetail{
				Ref:         ref.Ref,
				Description: ref.Description,
				SourcePath:  ref.SourcePath,
				NodeType:    string(ref.NodeType),
			})
		}
		return nil, output, nil
	}

	// Summary mode: one entry per target, most referenced first.
	counts := make(map[string]int)
	for _, ref := range filtered {
		counts[ref.Ref]++
	}
	summaries := make([]refSummary, 0, len(counts))
	for ref, count := range counts {
		summaries = append(summaries, refSummary{Ref: ref, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Ref < summaries[j].Ref
	})

	paged := paginate(summaries, input.Offset, input.Limit)
	return nil, walkRefsOutput{
		Total:     len(refs.UniqueRefs()),
		Matched:   len(summaries),
		Returned:  len(paged),
		Summaries: paged,
	}, nil
}

// filterRefs applies target and node_type filters to refs.
func filterRefs(refs []*walker.RefInfo, input walkRefsInput) []*walker.RefInfo {
	if input.Target == "" && input.NodeType == "" {
		return refs
	}
	var filtered []*walker.RefInfo
	for _, ref := range refs {
		if input.Target != "" && !matchRefGlob(ref.Ref, input.Target) {
			continue
		}
		if input.NodeType != "" && !strings.EqualFold(string(ref.NodeType), input.NodeType) {
			continue
		}
		filtered = append(filtered, ref)
	}
	return filtered
}

// matchRefGlob matches a $ref value against a glob pattern, case-insensitively.
// Unlike a plain filepath.Match, * and ? also match across the / separators
// of "#/components/schemas/Pet".
func matchRefGlob(ref, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.EqualFold(ref, pattern)
	}
	normalizedRef := strings.ReplaceAll(strings.ToLower(ref), "/", ":")
	normalizedPattern := strings.ReplaceAll(strings.ToLower(pattern), "/", ":")
	matched, err := filepath.Match(normalizedPattern, normalizedRef)
	return err == nil && matched
}
