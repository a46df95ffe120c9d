package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/walker"
)

type lookupRefInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI 3.x document to search"`
	Ref  string    `json:"ref"  jsonschema:"Local component reference, e.g. #/components/schemas/Pet"`
}

// componentSummary describes a component value. Only the fields that apply
// to the component's kind are set.
type componentSummary struct {
	Type        string   `json:"type,omitempty"`
	Format      string   `json:"format,omitempty"`
	Properties  []string `json:"properties,omitempty"`
	Items       string   `json:"items,omitempty"`
	Name        string   `json:"name,omitempty"`
	In          string   `json:"in,omitempty"`
	Description string   `json:"description,omitempty"`
	MediaTypes  []string `json:"media_types,omitempty"`
	Headers     []string `json:"headers,omitempty"`
}

type lookupRefOutput struct {
	Ref          string            `json:"ref"`
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Target       string            `json:"target,omitempty"`
	Summary      *componentSummary `json:"summary,omitempty"`
	ReferencedBy int               `json:"referenced_by"`
}

func handleLookupRef(_ context.Context, _ *mcp.CallToolRequest, input lookupRefInput) (*mcp.CallToolResult, lookupRefOutput, error) {
	if input.Ref == "" {
		return errResult(fmt.Errorf("ref is required")), lookupRefOutput{}, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return decodeErrResult(err), lookupRefOutput{}, nil
	}

	target, err := walker.LookupComponent(result.Spec, input.Ref)
	if err != nil {
		return errResult(err), lookupRefOutput{}, nil
	}

	refs, err := walker.CollectRefs(result.Spec)
	if err != nil {
		return errResult(err), lookupRefOutput{}, nil
	}

	output := lookupRefOutput{
		Ref:          input.Ref,
		Kind:         target.Kind,
		Name:         target.Name,
		ReferencedBy: refs.Count(input.Ref),
	}

	switch v := target.Value.(type) {
	case parser.Object[parser.Schema]:
		output.Variant, output.Target = cellVariant(v)
		if s, ok := v.Value(); ok {
			output.Summary = summarizeSchema(&s)
		}
	case parser.Object[parser.Response]:
		output.Variant, output.Target = cellVariant(v)
		if r, ok := v.Value(); ok {
			output.Summary = &componentSummary{
				Description: r.Description,
				MediaTypes:  sortedKeys(r.Content),
				Headers:     sortedKeys(r.Headers),
			}
		}
	case parser.Object[parser.Parameter]:
		output.Variant, output.Target = cellVariant(v)
		if p, ok := v.Value(); ok {
			output.Summary = &componentSummary{Name: p.Name, In: p.In}
			if p.Schema != nil {
				if s, ok := p.Schema.Value(); ok {
					output.Summary.Type = string(s.Type)
					output.Summary.Format = s.Format
				}
			}
		}
	case *parser.RequestBody:
		output.Variant = parser.KindValue.String()
		if v != nil {
			output.Summary = &componentSummary{MediaTypes: sortedKeys(v.Content)}
		}
	case *parser.Header:
		output.Variant = parser.KindValue.String()
		if v != nil {
			output.Summary = summarizeSchema(&v.Schema)
			output.Summary.Description = v.Description
		}
	}

	return nil, output, nil
}

// cellVariant names the active variant of o and, for a reference, its target.
func cellVariant[T any](o parser.Object[T]) (variant, ref string) {
	if r, ok := o.Reference(); ok {
		ref = r.Ref
	}
	return o.Kind().String(), ref
}

func summarizeSchema(s *parser.Schema) *componentSummary {
	summary := &componentSummary{
		Type:       string(s.Type),
		Format:     s.Format,
		Properties: sortedKeys(s.Properties),
	}
	if s.Items != nil {
		switch variant, ref := cellVariant(*s.Items); {
		case ref != "":
			summary.Items = ref
		case variant == parser.KindValue.String():
			items, _ := s.Items.Value()
			summary.Items = string(items.Type)
		}
	}
	return summary
}

// sortedKeys is maputil.SortedKeys with nil for an empty map, so the field is omitted.
func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	return maputil.SortedKeys(m)
}
