package walker

import (
	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

// ComponentTarget is the component a local $ref names.
type ComponentTarget struct {
	// Kind is the Components map the target lives in (e.g., "schemas").
	Kind string

	// Name is the component name, with JSON pointer escapes removed.
	Name string

	// Value is the component entry: an Object[Schema], Object[Response] or
	// Object[Parameter], or a *RequestBody or *Header. A component that is
	// itself a $ref is returned as is and not followed.
	Value any
}

// LookupComponent finds the component named by ref
// (e.g., "#/components/schemas/Pet"). It looks up a single entry and never
// follows a chain of references.
//
// External references, pointers below a component and missing components
// report an *oaserrors.ReferenceError.
func LookupComponent(spec *parser.Spec, ref string) (*ComponentTarget, error) {
	if !pathutil.IsLocalRef(ref) {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "external reference"}
	}
	kind, name, ok := pathutil.SplitComponentRef(ref)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "not a component reference"}
	}

	target := &ComponentTarget{Kind: string(kind), Name: name}
	var c *parser.Components
	if spec != nil {
		c = spec.Components
	}
	if c != nil {
		switch kind {
		case pathutil.ComponentSchemas:
			target.Value, ok = c.Schemas[name]
		case pathutil.ComponentResponses:
			target.Value, ok = c.Responses[name]
		case pathutil.ComponentParameters:
			target.Value, ok = c.Parameters[name]
		case pathutil.ComponentRequestBodies:
			target.Value, ok = c.RequestBodies[name]
		case pathutil.ComponentHeaders:
			target.Value, ok = c.Headers[name]
		}
	}
	if c == nil || !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "no such component"}
	}
	return target, nil
}
