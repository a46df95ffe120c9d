// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasmodel/parser"
)

// NewSimpleSpec creates a minimal strict-dialect document for testing.
// Contains only the openapi version, info and an empty paths map.
func NewSimpleSpec() *parser.Spec {
	return &parser.Spec{
		OpenAPI: "3.0.3",
		Info: &parser.Info{
			Title:   "Test API",
			Version: "1.0.0",
		},
		Paths: make(map[string]*parser.PathItem),
	}
}

// NewPetstoreSpec creates a strict-dialect petstore document.
//
// It has two paths, three operations (listPets, createPet, showPetById),
// component schemas Pet, Pets and Error, a PetId parameter and a NotFound
// response. It carries six $refs: four to Pet or Pets, one to Error and one
// to the PetId parameter.
func NewPetstoreSpec() *parser.Spec {
	spec := NewSimpleSpec()
	spec.Paths = map[string]*parser.PathItem{
		"/pets": {
			Operations: map[parser.Method]*parser.Operation{
				parser.MethodGet: {
					Summary:     "List pets",
					OperationID: "listPets",
					Parameters: []parser.Object[parser.Parameter]{
						parser.ValueOf(parser.Parameter{
							Name:   "limit",
							In:     "query",
							Schema: parser.ValueOf(parser.Schema{Type: parser.SchemaTypeInteger, Format: "int32"}).Ptr(),
						}),
					},
					Responses: map[string]*parser.Response{
						"200": {
							Description: "A list of pets",
							Headers: map[string]parser.Object[parser.Header]{
								"X-Rate-Limit": parser.ValueOf(parser.Header{
									Schema: parser.Schema{Type: parser.SchemaTypeInteger},
								}),
							},
							Content: map[string]*parser.MediaType{
								"application/json": {Schema: parser.RefTo[parser.Schema]("#/components/schemas/Pets")},
							},
						},
					},
				},
				parser.MethodPost: {
					Summary:     "Create a pet",
					OperationID: "createPet",
					RequestBody: &parser.RequestBody{
						Content: map[string]*parser.MediaType{
							"application/json": {Schema: parser.RefTo[parser.Schema]("#/components/schemas/Pet")},
						},
					},
					Responses: map[string]*parser.Response{
						"201": {Description: "Created"},
					},
				},
			},
		},
		"/pets/{petId}": {
			Parameters: []parser.Object[parser.Parameter]{
				parser.RefTo[parser.Parameter]("#/components/parameters/PetId"),
			},
			Operations: map[parser.Method]*parser.Operation{
				parser.MethodGet: {
					Summary:     "Info for a specific pet",
					OperationID: "showPetById",
					Responses: map[string]*parser.Response{
						"200": {
							Description: "A pet",
							Content: map[string]*parser.MediaType{
								"application/json": {Schema: parser.RefTo[parser.Schema]("#/components/schemas/Pet")},
							},
						},
						"default": {
							Description: "Unexpected error",
							Content: map[string]*parser.MediaType{
								"application/json": {Schema: parser.RefTo[parser.Schema]("#/components/schemas/Error")},
							},
						},
					},
				},
			},
		},
	}
	required := true
	spec.Components = &parser.Components{
		Schemas: map[string]parser.Object[parser.Schema]{
			"Pet": parser.ValueOf(parser.Schema{
				Type: parser.SchemaTypeObject,
				Properties: map[string]parser.Object[parser.Schema]{
					"id":   parser.ValueOf(parser.Schema{Type: parser.SchemaTypeInteger, Format: "int64"}),
					"name": parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}),
					"tag":  parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}),
				},
			}),
			"Pets": parser.ValueOf(parser.Schema{
				Type:  parser.SchemaTypeArray,
				Items: parser.RefTo[parser.Schema]("#/components/schemas/Pet").Ptr(),
			}),
			"Error": parser.ValueOf(parser.Schema{
				Type: parser.SchemaTypeObject,
				Properties: map[string]parser.Object[parser.Schema]{
					"code":    parser.ValueOf(parser.Schema{Type: parser.SchemaTypeInteger, Format: "int32"}),
					"message": parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}),
				},
			}),
		},
		Parameters: map[string]parser.Object[parser.Parameter]{
			"PetId": parser.ValueOf(parser.Parameter{
				Name:     "petId",
				In:       "path",
				Required: &required,
				Schema:   parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}).Ptr(),
			}),
		},
		Responses: map[string]parser.Object[parser.Response]{
			"NotFound": parser.ValueOf(parser.Response{Description: "Not found"}),
		},
	}
	return spec
}

// NewLooseSpec creates a loose-dialect (3.1) document exercising the
// features the strict dialect rejects: an open method key, referenced
// operation parameters, a referenced parameter schema and info extensions.
func NewLooseSpec() *parser.Spec {
	return &parser.Spec{
		OpenAPI: "3.1.0",
		Info: &parser.Info{
			Title:   "Search API",
			Version: "2.0.0",
			Extra: map[string]any{
				"x-audience": "internal",
			},
		},
		Paths: map[string]*parser.PathItem{
			"/search": {
				Operations: map[parser.Method]*parser.Operation{
					"query": {
						OperationID: "querySearch",
						Parameters: []parser.Object[parser.Parameter]{
							parser.RefTo[parser.Parameter]("#/components/parameters/Term"),
						},
						Responses: map[string]*parser.Response{
							"200": {
								Description: "Results",
								Headers: map[string]parser.Object[parser.Header]{
									"X-Total": parser.RefTo[parser.Header]("#/components/headers/Total"),
								},
								Content: map[string]*parser.MediaType{
									"application/json": {Schema: parser.EmptyObject[parser.Schema]()},
								},
							},
						},
					},
					parser.MethodGet: {
						OperationID: "getSearch",
						Parameters: []parser.Object[parser.Parameter]{
							parser.ValueOf(parser.Parameter{
								Name:   "q",
								In:     "query",
								Schema: parser.RefTo[parser.Schema]("#/components/schemas/Term").Ptr(),
							}),
						},
						Responses: map[string]*parser.Response{
							"200": {Description: "Results"},
						},
					},
				},
			},
		},
		Components: &parser.Components{
			Schemas: map[string]parser.Object[parser.Schema]{
				"Term": parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}),
			},
			Parameters: map[string]parser.Object[parser.Parameter]{
				"Term": parser.ValueOf(parser.Parameter{
					Name:   "term",
					In:     "query",
					Schema: parser.RefTo[parser.Schema]("#/components/schemas/Term").Ptr(),
				}),
			},
			Headers: map[string]*parser.Header{
				"Total": {Schema: parser.Schema{Type: parser.SchemaTypeInteger}},
			},
		},
	}
}

// WriteTempYAML encodes a document as YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, spec *parser.Spec) string {
	t.Helper()
	return writeTemp(t, spec, parser.SourceFormatYAML, "test.yaml")
}

// WriteTempJSON encodes a document as JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, spec *parser.Spec) string {
	t.Helper()
	return writeTemp(t, spec, parser.SourceFormatJSON, "test.json")
}

func writeTemp(t *testing.T, spec *parser.Spec, format parser.SourceFormat, name string) string {
	t.Helper()

	data, err := parser.Encode(spec, format)
	if err != nil {
		t.Fatalf("Failed to encode document as %s: %v", format, err)
	}

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary %s file: %v", format, err)
	}

	return tmpFile
}
