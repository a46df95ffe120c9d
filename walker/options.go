package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/oasmodel/internal/options"
	"github.com/erraggy/oasmodel/parser"
)

// WithFilePath specifies a file path to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed result to walk.
func WithParsed(result *parser.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithSpec specifies a decoded document to walk.
func WithSpec(spec *parser.Spec) Option {
	return func(w *Walker) {
		w.spec = spec
	}
}

// WithMaxSchemaDepth sets the maximum schema recursion depth.
// If depth is not positive, it is silently ignored and the default (100) is kept.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a cancelled
// context ends the walk with its error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("openapi.yaml"),
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, s *parser.Schema) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	if err := options.ValidateSingleInputSource("walker",
		options.Source{Name: "WithFilePath", Set: w.filePath != nil},
		options.Source{Name: "WithParsed", Set: w.parsed != nil},
		options.Source{Name: "WithSpec", Set: w.spec != nil},
	); err != nil {
		return err
	}

	spec := w.spec
	switch {
	case w.parsed != nil:
		spec = w.parsed.Spec
	case w.filePath != nil:
		result, err := parser.New().Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
		spec = result.Spec
	}
	if spec == nil {
		return fmt.Errorf("walker: nil Spec")
	}
	return w.walk(spec)
}
