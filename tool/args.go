package tool

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
)

// Args wraps the raw JSON argument payload of a tool call with typed
// accessors. Accessors return zero values for absent keys; use Has or
// schema validation to distinguish.
type Args struct {
	raw gjson.Result
}

// ParseArgs wraps the raw JSON argument object produced by the model.
func ParseArgs(raw string) Args {
	return Args{raw: gjson.Parse(raw)}
}

// Raw returns the underlying JSON text.
func (a Args) Raw() string {
	return a.raw.Raw
}

// Has reports whether key is present.
func (a Args) Has(key string) bool {
	return a.raw.Get(key).Exists()
}

// Get returns the raw value at key.
func (a Args) Get(key string) gjson.Result {
	return a.raw.Get(key)
}

// String returns the string value at key, or "".
func (a Args) String(key string) string {
	return a.raw.Get(key).String()
}

// Bool returns the boolean value at key, or false.
func (a Args) Bool(key string) bool {
	return a.raw.Get(key).Bool()
}

// Strings returns the array value at key as a string slice.
func (a Args) Strings(key string) []string {
	val := a.raw.Get(key)
	if !val.IsArray() {
		return nil
	}
	arr := val.Array()
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		out = append(out, el.String())
	}
	return out
}

// Validate checks args against schema: the payload must be a JSON object,
// every required property must be present, and every declared property that
// is present must match its declared type. It reports the first violation.
func Validate(schema *jsonschema.Schema, args Args) error {
	if schema == nil {
		return nil
	}
	if args.raw.Raw != "" && !args.raw.IsObject() {
		return fmt.Errorf("arguments must be a JSON object")
	}

	for _, req := range schema.Required {
		if !args.Has(req) {
			return fmt.Errorf("missing required argument %q", req)
		}
	}

	if schema.Properties == nil {
		return nil
	}
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		val := args.Get(pair.Key)
		if !val.Exists() {
			continue
		}
		if err := checkType(pair.Key, pair.Value, val); err != nil {
			return err
		}
	}
	return nil
}

func checkType(name string, schema *jsonschema.Schema, val gjson.Result) error {
	switch schema.Type {
	case "string":
		if val.Type != gjson.String {
			return fmt.Errorf("argument %q must be a string", name)
		}
	case "boolean":
		if !val.IsBool() {
			return fmt.Errorf("argument %q must be a boolean", name)
		}
	case "number", "integer":
		if val.Type != gjson.Number {
			return fmt.Errorf("argument %q must be a number", name)
		}
	case "array":
		if !val.IsArray() {
			return fmt.Errorf("argument %q must be an array", name)
		}
		if schema.Items != nil && schema.Items.Type == "string" {
			for _, el := range val.Array() {
				if el.Type != gjson.String {
					return fmt.Errorf("argument %q must be an array of strings", name)
				}
			}
		}
	case "object":
		if !val.IsObject() {
			return fmt.Errorf("argument %q must be an object", name)
		}
	}
	return nil
}
