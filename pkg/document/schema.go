package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/matzehuels/graphnest/pkg/errors"
)

const schemaURL = "https://graphnest.dev/schemas/document.json"

// SchemaJSON is the JSON Schema every document is checked against before it
// is decoded, whatever its encoding.
const SchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://graphnest.dev/schemas/document.json",
  "type": "object",
  "required": ["items"],
  "properties": {
    "name": { "type": "string" },
    "items": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/item" }
    },
    "edges": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/edge" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "item": {
      "type": "object",
      "properties": {
        "id": { "type": "string" },
        "label": { "type": "string" },
        "type": { "type": "string" },
        "kind": { "type": "string", "enum": ["node", "container"] },
        "width": { "type": "number", "minimum": 0 },
        "height": { "type": "number", "minimum": 0 },
        "container": { "type": "string" },
        "detached": { "type": "boolean" },
        "x": { "type": "number" },
        "y": { "type": "number" },
        "default": { "$ref": "#/$defs/rect" },
        "bounds": { "$ref": "#/$defs/rect" }
      },
      "additionalProperties": false
    },
    "rect": {
      "type": "object",
      "properties": {
        "x": { "type": "number" },
        "y": { "type": "number" },
        "width": { "type": "number", "minimum": 0 },
        "height": { "type": "number", "minimum": 0 }
      },
      "additionalProperties": false
    },
    "edge": {
      "type": "object",
      "required": ["from", "to"],
      "properties": {
        "from": { "type": "string", "minLength": 1 },
        "to": { "type": "string", "minLength": 1 }
      },
      "additionalProperties": false
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(SchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal document schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add document schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks a decoded JSON value (as produced by
// jsonschema.UnmarshalJSON) against [SchemaJSON].
func validateSchema(v any) error {
	s, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile document schema")
	}
	if err := s.Validate(v); err != nil {
		return schemaError(err)
	}
	return nil
}

// toJSONValue round-trips v through JSON so numbers become json.Number, as
// the schema validator expects.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
}

func schemaError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "schema validation")
	}
	violations := collectViolations(verr)
	switch len(violations) {
	case 0:
		return errors.New(errors.ErrCodeInvalidDocument, "%s", verr.Error())
	case 1:
		return errors.New(errors.ErrCodeInvalidDocument, "%s", violations[0])
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "%d schema violations: %s",
			len(violations), strings.Join(violations, "; "))
	}
}

// collectViolations flattens a validation error tree into "location: message" leaves.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}
	var out []string
	for _, cause := range verr.Causes {
		out = append(out, collectViolations(cause)...)
	}
	return out
}
