package walker

// RefNodeType is the kind of node a $ref stands in for.
type RefNodeType string

// Node types that can hold a $ref.
const (
	RefNodeSchema    RefNodeType = "schema"
	RefNodeParameter RefNodeType = "parameter"
	RefNodeResponse  RefNodeType = "response"
	RefNodeHeader    RefNodeType = "header"
)

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/components/schemas/User")
	Ref string

	// Description is the description written next to the $ref, if any
	Description string

	// SourcePath is the JSON path where the ref was encountered
	SourcePath string

	// NodeType is the type of node containing the ref
	NodeType RefNodeType
}

// RefHandler is called when a $ref is encountered during traversal.
// Return Stop to halt traversal, Continue to proceed.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action
