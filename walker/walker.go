package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/oasmodel/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each node type.
// Each handler receives a WalkContext and the node, and returns an Action.

// DocumentHandler is called for the root document.
type DocumentHandler func(wc *WalkContext, spec *parser.Spec) Action

// InfoHandler is called for the Info object.
type InfoHandler func(wc *WalkContext, info *parser.Info) Action

// PathHandler is called for each path entry. wc.PathTemplate holds the path key.
type PathHandler func(wc *WalkContext, pathItem *parser.PathItem) Action

// OperationHandler is called for each Operation. wc.Method holds the operation key.
type OperationHandler func(wc *WalkContext, op *parser.Operation) Action

// ParameterHandler is called for each inline Parameter.
type ParameterHandler func(wc *WalkContext, param *parser.Parameter) Action

// RequestBodyHandler is called for each RequestBody.
type RequestBodyHandler func(wc *WalkContext, reqBody *parser.RequestBody) Action

// ResponseHandler is called for each inline Response.
type ResponseHandler func(wc *WalkContext, resp *parser.Response) Action

// HeaderHandler is called for each inline Header.
type HeaderHandler func(wc *WalkContext, header *parser.Header) Action

// MediaTypeHandler is called for each MediaType. wc.Name holds the media type.
type MediaTypeHandler func(wc *WalkContext, mt *parser.MediaType) Action

// SchemaHandler is called for each inline Schema, including nested schemas.
type SchemaHandler func(wc *WalkContext, schema *parser.Schema) Action

// SchemaSkippedHandler is called when a schema is not visited because it
// exceeds the maximum schema depth. reason is "depth".
type SchemaSkippedHandler func(wc *WalkContext, reason string, schema *parser.Schema)

// Walker traverses decoded documents and calls handlers for each node type.
type Walker struct {
	onDocument      DocumentHandler
	onInfo          InfoHandler
	onPath          PathHandler
	onOperation     OperationHandler
	onParameter     ParameterHandler
	onRequestBody   RequestBodyHandler
	onResponse      ResponseHandler
	onHeader        HeaderHandler
	onMediaType     MediaTypeHandler
	onSchema        SchemaHandler
	onSchemaSkipped SchemaSkippedHandler
	onRef           RefHandler

	maxDepth int
	userCtx  context.Context

	// input sources for WalkWithOptions
	filePath *string
	parsed   *parser.ParseResult
	spec     *parser.Spec

	stopped bool
}

// DefaultMaxSchemaDepth is the default limit on nested schema depth.
const DefaultMaxSchemaDepth = 100

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: DefaultMaxSchemaDepth,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithDocumentHandler sets the handler for the root document.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithInfoHandler sets the handler for Info objects.
func WithInfoHandler(fn InfoHandler) Option {
	return func(w *Walker) { w.onInfo = fn }
}

// WithPathHandler sets the handler for path entries.
func WithPathHandler(fn PathHandler) Option {
	return func(w *Walker) { w.onPath = fn }
}

// WithOperationHandler sets the handler for Operation objects.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithParameterHandler sets the handler for Parameter objects.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithRequestBodyHandler sets the handler for RequestBody objects.
func WithRequestBodyHandler(fn RequestBodyHandler) Option {
	return func(w *Walker) { w.onRequestBody = fn }
}

// WithResponseHandler sets the handler for Response objects.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithHeaderHandler sets the handler for Header objects.
func WithHeaderHandler(fn HeaderHandler) Option {
	return func(w *Walker) { w.onHeader = fn }
}

// WithMediaTypeHandler sets the handler for MediaType objects.
func WithMediaTypeHandler(fn MediaTypeHandler) Option {
	return func(w *Walker) { w.onMediaType = fn }
}

// WithSchemaHandler sets the handler for Schema objects.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithSchemaSkippedHandler sets the handler called when schemas are skipped.
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}

// WithRefHandler sets a handler called when a $ref is encountered.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) { w.onRef = fn }
}

// Walk traverses the parsed document and calls registered handlers for each node.
func Walk(result *parser.ParseResult, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	return WalkSpec(result.Spec, opts...)
}

// WalkSpec traverses spec and calls registered handlers for each node.
func WalkSpec(spec *parser.Spec, opts ...Option) error {
	if spec == nil {
		return fmt.Errorf("walker: nil Spec")
	}
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.walk(spec)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
