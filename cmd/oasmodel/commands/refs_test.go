package commands

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

// brokenRefsYAML references a missing component, another document and a
// property below a component.
const brokenRefsYAML = `openapi: "3.0.3"
info:
  title: Broken
  version: "1"
paths:
  /things:
    get:
      operationId: listThings
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Ghost"
            application/xml:
              schema:
                $ref: "common.yaml#/components/schemas/Shared"
            text/plain:
              schema:
                $ref: "#/components/schemas/Thing/properties/name"
components:
  schemas:
    Thing:
      type: object
      properties:
        name:
          type: string
        owner:
          $ref: "#/components/schemas/Ghost"
`

func TestCheckRefs(t *testing.T) {
	spec, err := parser.Decode([]byte(brokenRefsYAML), parser.SourceFormatYAML, parser.DialectAuto)
	require.NoError(t, err)

	entries, missing, err := CheckRefs(spec)
	require.NoError(t, err)

	assert.Equal(t, []RefEntry{
		{
			Ref: "#/components/schemas/Ghost", Count: 2, Status: RefStatusMissing,
			FirstSeen: "$.paths['/things'].get.responses['200'].content['application/json'].schema",
		},
		{
			Ref: "#/components/schemas/Thing/properties/name", Count: 1, Status: RefStatusNested,
			FirstSeen: "$.paths['/things'].get.responses['200'].content['text/plain'].schema",
		},
		{
			Ref: "common.yaml#/components/schemas/Shared", Count: 1, Status: RefStatusExternal,
			FirstSeen: "$.paths['/things'].get.responses['200'].content['application/xml'].schema",
		},
	}, entries)

	require.Len(t, missing, 1)
	var refErr *oaserrors.ReferenceError
	require.True(t, errors.As(missing[0], &refErr))
	assert.Equal(t, "#/components/schemas/Ghost", refErr.Ref)
}

func TestCheckRefs_AllResolve(t *testing.T) {
	spec, err := parser.Decode([]byte(petAPIYAML), parser.SourceFormatYAML, parser.DialectAuto)
	require.NoError(t, err)

	entries, missing, err := CheckRefs(spec)
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.Equal(t, RefStatusOK, e.Status, e.Ref)
	}
	assert.Equal(t, "parameters", entries[0].Kind)
	assert.Equal(t, "PetId", entries[0].Name)
	assert.Equal(t, RefEntry{
		Ref: "#/components/schemas/Pet", Count: 5, Status: RefStatusOK, Kind: "schemas", Name: "Pet",
		FirstSeen: "$.paths['/pets'].post.requestBody.content['application/json'].schema",
	}, entries[2])
}

func TestHandleRefs_Text(t *testing.T) {
	streams, out, errOut := newTestStreams(petAPIYAML)

	require.NoError(t, HandleRefs([]string{"-"}, streams))
	assert.Contains(t, errOut.String(), "References: 8 (4 distinct)")
	assert.Contains(t, out.String(), "FIRST SEEN")
	assert.Contains(t, out.String(), "#/components/schemas/Pets")
	assert.NotContains(t, out.String(), RefStatusMissing)
}

func TestHandleRefs_MissingIsAnError(t *testing.T) {
	streams, out, _ := newTestStreams(brokenRefsYAML)

	err := HandleRefs([]string{"-q", "--missing", "--format", "json", "-"}, streams)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))
	assert.Contains(t, err.Error(), "no such component")

	var entries []RefEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "#/components/schemas/Ghost", entries[0].Ref)
}

func TestHandleRefs_NoReferences(t *testing.T) {
	doc := "openapi: \"3.0.3\"\ninfo:\n  title: Empty\n  version: \"1\"\npaths: {}\n"
	streams, out, _ := newTestStreams(doc)

	require.NoError(t, HandleRefs([]string{"-q", "-"}, streams))
	assert.Equal(t, "No references.\n", out.String())
}

func TestHandleRefs_Errors(t *testing.T) {
	streams, _, _ := newTestStreams(petAPIYAML)
	err := HandleRefs(nil, streams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires exactly one file path")

	streams, _, _ = newTestStreams(petAPIYAML)
	err = HandleRefs([]string{"--format", "xml", "-"}, streams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
