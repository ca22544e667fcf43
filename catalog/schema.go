package catalog

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes a field as either "name:type" shorthand or an object.
func (Field) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("name", &jsonschema.Schema{Type: "string", MinLength: ptr(uint64(1))})
	props.Set("type", &jsonschema.Schema{Type: "string", Description: "Type name such as int or []int; defaults to string"})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:        "string",
				Pattern:     `^[^:]+(:.+)?$`,
				Description: "Shorthand name:type",
			},
			{
				Type:                 "object",
				Properties:           props,
				Required:             []string{"name"},
				AdditionalProperties: jsonschema.FalseSchema,
			},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

// Schema returns the JSON Schema of the catalog file format.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&Catalog{})
	s.Title = "outparse catalog"
	s.Description = "Named templates for typed value extraction"
	return json.MarshalIndent(s, "", "  ")
}
