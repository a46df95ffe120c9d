package parser_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

func ExampleDecode() {
	src := []byte(`openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: all pets
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pets'
`)
	spec, err := parser.Decode(src, parser.SourceFormatYAML, parser.DialectAuto)
	if err != nil {
		log.Fatal(err)
	}

	op, _ := spec.Operation("/pets", parser.MethodGet)
	schema := op.Responses["200"].Content["application/json"].Schema
	ref, _ := schema.Reference()
	fmt.Println(op.OperationID, schema.Kind(), ref.Ref)
	// Output: listPets reference #/components/schemas/Pets
}

func ExampleEncode() {
	spec := &parser.Spec{
		OpenAPI: "3.1.0",
		Info:    &parser.Info{Title: "Pets", Version: "1.0.0"},
		Paths: map[string]*parser.PathItem{
			"/pets": {
				Operations: map[parser.Method]*parser.Operation{
					parser.MethodPost: {OperationID: "createPet"},
					parser.MethodGet:  {OperationID: "listPets"},
				},
			},
		},
	}
	out, err := parser.Encode(spec, parser.SourceFormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	// Output:
	// openapi: 3.1.0
	// info:
	//   title: Pets
	//   version: 1.0.0
	// paths:
	//   /pets:
	//     get:
	//       operationId: listPets
	//     post:
	//       operationId: createPet
}

func ExampleDecode_decodeError() {
	src := []byte(`openapi: 3.0.3
paths: {}
components:
  schemas:
    Pet:
      properties:
        name:
          type: string
`)
	_, err := parser.Decode(src, parser.SourceFormatYAML, parser.DialectAuto)

	var de *oaserrors.DecodeError
	if errors.As(err, &de) {
		fmt.Println(de.Path, de.Field, de.Missing)
	}
	// Output: components.schemas.Pet type true
}

func ExampleParseWithOptions() {
	result, err := parser.ParseWithOptions(
		parser.WithFilePath("testdata/petstore.json"),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result.Version, result.Dialect, result.SourceFormat)
	fmt.Println(result.Stats.PathCount, "paths,", result.Stats.OperationCount, "operations")
	// Output:
	// 3.0.0 strict json
	// 2 paths, 3 operations
}

func ExampleObject() {
	cells := []parser.Object[parser.Schema]{
		parser.ValueOf(parser.Schema{Type: parser.SchemaTypeString}),
		parser.RefTo[parser.Schema]("#/components/schemas/Pet"),
		parser.EmptyObject[parser.Schema](),
	}
	for _, c := range cells {
		switch c.Kind() {
		case parser.KindValue:
			v, _ := c.Value()
			fmt.Println("inline", v.Type)
		case parser.KindReference:
			r, _ := c.Reference()
			fmt.Println("ref", r.Ref)
		case parser.KindEmpty:
			fmt.Println("empty")
		}
	}
	// Output:
	// inline string
	// ref #/components/schemas/Pet
	// empty
}
