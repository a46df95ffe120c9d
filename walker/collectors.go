package walker

import (
	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/parser"
)

// SchemaInfo contains information about a collected schema.
type SchemaInfo struct {
	// Schema is the collected schema.
	Schema *parser.Schema

	// Name is the component or property name. Empty for other inline schemas.
	Name string

	// JSONPath is the full JSON path to the schema.
	JSONPath string

	// IsComponent is true when the schema is defined in components.
	IsComponent bool
}

// SchemaCollector holds schemas collected during a walk.
type SchemaCollector struct {
	// All contains all schemas in traversal order.
	All []*SchemaInfo

	// Components contains only schemas under components.
	Components []*SchemaInfo

	// Inline contains only schemas outside components.
	Inline []*SchemaInfo

	// ByPath provides lookup by JSON path.
	ByPath map[string]*SchemaInfo
}

// CollectSchemas walks the document and collects all inline schemas.
func CollectSchemas(spec *parser.Spec) (*SchemaCollector, error) {
	collector := &SchemaCollector{
		ByPath: make(map[string]*SchemaInfo),
	}

	err := WalkSpec(spec,
		WithSchemaHandler(func(wc *WalkContext, schema *parser.Schema) Action {
			info := &SchemaInfo{
				Schema:      schema,
				Name:        wc.Name,
				JSONPath:    wc.JSONPath,
				IsComponent: wc.IsComponent,
			}
			collector.All = append(collector.All, info)
			collector.ByPath[wc.JSONPath] = info
			if wc.IsComponent {
				collector.Components = append(collector.Components, info)
			} else {
				collector.Inline = append(collector.Inline, info)
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// OperationInfo contains information about a collected operation.
type OperationInfo struct {
	// Operation is the collected operation.
	Operation *parser.Operation

	// PathTemplate is the URL path template (e.g., "/pets/{petId}").
	PathTemplate string

	// Method is the operation key (e.g., "get", "post").
	Method string

	// JSONPath is the full JSON path to the operation.
	JSONPath string
}

// OperationCollector holds operations collected during a walk.
type OperationCollector struct {
	// All contains all operations in traversal order.
	All []*OperationInfo

	// ByPath groups operations by path template.
	ByPath map[string][]*OperationInfo

	// ByMethod groups operations by operation key.
	ByMethod map[string][]*OperationInfo
}

// CollectOperations walks the document and collects all operations.
func CollectOperations(spec *parser.Spec) (*OperationCollector, error) {
	collector := &OperationCollector{
		ByPath:   make(map[string][]*OperationInfo),
		ByMethod: make(map[string][]*OperationInfo),
	}

	err := WalkSpec(spec,
		WithOperationHandler(func(wc *WalkContext, op *parser.Operation) Action {
			info := &OperationInfo{
				Operation:    op,
				PathTemplate: wc.PathTemplate,
				Method:       wc.Method,
				JSONPath:     wc.JSONPath,
			}
			collector.All = append(collector.All, info)
			collector.ByPath[wc.PathTemplate] = append(collector.ByPath[wc.PathTemplate], info)
			collector.ByMethod[wc.Method] = append(collector.ByMethod[wc.Method], info)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// RefCollector holds references collected during a walk.
type RefCollector struct {
	// All contains every $ref occurrence in traversal order.
	All []*RefInfo

	// ByRef groups occurrences by $ref value.
	ByRef map[string][]*RefInfo

	// ByNodeType groups occurrences by the kind of node the $ref stands for.
	ByNodeType map[RefNodeType][]*RefInfo
}

// CollectRefs walks the document and collects every $ref occurrence.
func CollectRefs(spec *parser.Spec) (*RefCollector, error) {
	collector := &RefCollector{
		ByRef:      make(map[string][]*RefInfo),
		ByNodeType: make(map[RefNodeType][]*RefInfo),
	}

	err := WalkSpec(spec,
		WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
			collector.All = append(collector.All, ref)
			collector.ByRef[ref.Ref] = append(collector.ByRef[ref.Ref], ref)
			collector.ByNodeType[ref.NodeType] = append(collector.ByNodeType[ref.NodeType], ref)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// Count returns the number of occurrences of ref.
func (c *RefCollector) Count(ref string) int {
	return len(c.ByRef[ref])
}

// UniqueRefs returns the distinct $ref values in sorted order.
func (c *RefCollector) UniqueRefs() []string {
	return maputil.SortedKeys(c.ByRef)
}
