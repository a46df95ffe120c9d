package walker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/testutil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

func TestLookupComponent(t *testing.T) {
	spec := testutil.NewPetstoreSpec()
	spec.Components.Schemas["a/b~c"] = parser.ValueOf(parser.Schema{Type: parser.SchemaTypeBoolean})
	spec.Components.RequestBodies = map[string]*parser.RequestBody{
		"NewPet": {Content: map[string]*parser.MediaType{}},
	}
	spec.Components.Headers = map[string]*parser.Header{
		"Trace": {Schema: parser.Schema{Type: parser.SchemaTypeString}},
	}

	tests := []struct {
		ref      string
		wantKind string
		wantName string
	}{
		{"#/components/schemas/Pet", "schemas", "Pet"},
		{"#/components/schemas/a~1b~0c", "schemas", "a/b~c"},
		{"#/components/parameters/PetId", "parameters", "PetId"},
		{"#/components/responses/NotFound", "responses", "NotFound"},
		{"#/components/requestBodies/NewPet", "requestBodies", "NewPet"},
		{"#/components/headers/Trace", "headers", "Trace"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			target, err := LookupComponent(spec, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, target.Kind)
			assert.Equal(t, tt.wantName, target.Name)
			assert.NotNil(t, target.Value)
		})
	}

	t.Run("value types", func(t *testing.T) {
		target, err := LookupComponent(spec, "#/components/schemas/Pets")
		require.NoError(t, err)
		schema, ok := target.Value.(parser.Object[parser.Schema])
		require.True(t, ok)
		value, ok := schema.Value()
		require.True(t, ok)
		assert.Equal(t, parser.SchemaTypeArray, value.Type)

		target, err = LookupComponent(spec, "#/components/headers/Trace")
		require.NoError(t, err)
		_, ok = target.Value.(*parser.Header)
		assert.True(t, ok)
	})
}

func TestLookupComponent_Errors(t *testing.T) {
	spec := testutil.NewPetstoreSpec()

	tests := []struct {
		name    string
		spec    *parser.Spec
		ref     string
		message string
	}{
		{"missing", spec, "#/components/schemas/Missing", "no such component"},
		{"wrong kind", spec, "#/components/headers/Pet", "no such component"},
		{"external", spec, "other.yaml#/components/schemas/Pet", "external reference"},
		{"nested pointer", spec, "#/components/schemas/Pet/properties/id", "not a component reference"},
		{"unknown map", spec, "#/components/examples/Pet", "not a component reference"},
		{"no components", testutil.NewSimpleSpec(), "#/components/schemas/Pet", "no such component"},
		{"nil spec", nil, "#/components/schemas/Pet", "no such component"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := LookupComponent(tt.spec, tt.ref)
			require.Error(t, err)
			assert.Nil(t, target)
			assert.ErrorIs(t, err, oaserrors.ErrReference)

			var refErr *oaserrors.ReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, tt.ref, refErr.Ref)
			assert.Equal(t, tt.message, refErr.Message)
		})
	}
}
