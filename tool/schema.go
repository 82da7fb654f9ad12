package tool

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Prop pairs a property name with its schema for use with Object.
type Prop struct {
	Name   string
	Schema *jsonschema.Schema
}

// P builds a Prop.
func P(name string, schema *jsonschema.Schema) Prop {
	return Prop{Name: name, Schema: schema}
}

// Object builds a top-level object schema with the given required property
// names and properties. Property order is preserved, so the schema
// advertised to the model is deterministic.
func Object(required []string, props ...Prop) *jsonschema.Schema {
	properties := orderedmap.New[string, *jsonschema.Schema]()
	for _, p := range props {
		properties.Set(p.Name, p.Schema)
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// String builds a string property schema.
func String(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

// Boolean builds a boolean property schema.
func Boolean(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description}
}

// Number builds a number property schema.
func Number(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description}
}

// StringArray builds an array-of-strings property schema.
func StringArray(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: description,
		Items:       &jsonschema.Schema{Type: "string"},
	}
}
