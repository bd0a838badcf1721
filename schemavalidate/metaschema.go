package schemavalidate

import (
	"github.com/xeipuuv/gojsonschema"
)

// draft4MetaSchema is the canonical JSON Schema draft-4 meta-schema
// text (http://json-schema.org/draft-04/schema#), embedded so that
// schema well-formedness checking (spec §4.3 step 1) never needs
// network access to resolve it. This is the published schema text
// itself, not code grounded on any example repo.
const draft4MetaSchema = `{
  "id": "http://json-schema.org/draft-04/schema#",
  "$schema": "http://json-schema.org/draft-04/schema#",
  "description": "Core schema meta-schema",
  "definitions": {
    "schemaArray": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#" }
    },
    "positiveInteger": {
      "type": "integer",
      "minimum": 0
    },
    "positiveIntegerDefault0": {
      "allOf": [ { "$ref": "#/definitions/positiveInteger" }, { "default": 0 } ]
    },
    "simpleTypes": {
      "enum": [ "array", "boolean", "integer", "null", "number", "object", "string" ]
    },
    "stringArray": {
      "type": "array",
      "items": { "type": "string" },
      "minItems": 1,
      "uniqueItems": true
    }
  },
  "type": "object",
  "properties": {
    "id": { "type": "string" },
    "$schema": { "type": "string" },
    "title": { "type": "string" },
    "description": { "type": "string" },
    "default": {},
    "multipleOf": { "type": "number", "minimum": 0, "exclusiveMinimum": true },
    "maximum": { "type": "number" },
    "exclusiveMaximum": { "type": "boolean", "default": false },
    "minimum": { "type": "number" },
    "exclusiveMinimum": { "type": "boolean", "default": false },
    "maxLength": { "$ref": "#/definitions/positiveInteger" },
    "minLength": { "$ref": "#/definitions/positiveIntegerDefault0" },
    "pattern": { "type": "string", "format": "regex" },
    "additionalItems": {
      "anyOf": [ { "type": "boolean" }, { "$ref": "#" } ],
      "default": {}
    },
    "items": {
      "anyOf": [ { "$ref": "#" }, { "$ref": "#/definitions/schemaArray" } ],
      "default": {}
    },
    "maxItems": { "$ref": "#/definitions/positiveInteger" },
    "minItems": { "$ref": "#/definitions/positiveIntegerDefault0" },
    "uniqueItems": { "type": "boolean", "default": false },
    "maxProperties": { "$ref": "#/definitions/positiveInteger" },
    "minProperties": { "$ref": "#/definitions/positiveIntegerDefault0" },
    "required": { "$ref": "#/definitions/stringArray" },
    "additionalProperties": {
      "anyOf": [ { "type": "boolean" }, { "$ref": "#" } ],
      "default": {}
    },
    "definitions": {
      "type": "object",
      "additionalProperties": { "$ref": "#" },
      "default": {}
    },
    "properties": {
      "type": "object",
      "additionalProperties": { "$ref": "#" },
      "default": {}
    },
    "patternProperties": {
      "type": "object",
      "additionalProperties": { "$ref": "#" },
      "default": {}
    },
    "dependencies": {
      "type": "object",
      "additionalProperties": {
        "anyOf": [ { "$ref": "#" }, { "$ref": "#/definitions/stringArray" } ]
      }
    },
    "enum": { "type": "array", "minItems": 1, "uniqueItems": true },
    "type": {
      "anyOf": [
        { "$ref": "#/definitions/simpleTypes" },
        {
          "type": "array",
          "items": { "$ref": "#/definitions/simpleTypes" },
          "minItems": 1,
          "uniqueItems": true
        }
      ]
    },
    "format": { "type": "string" },
    "allOf": { "$ref": "#/definitions/schemaArray" },
    "anyOf": { "$ref": "#/definitions/schemaArray" },
    "oneOf": { "$ref": "#/definitions/schemaArray" },
    "not": { "$ref": "#" }
  },
  "dependencies": {
    "exclusiveMaximum": [ "maximum" ],
    "exclusiveMinimum": [ "minimum" ]
  },
  "default": {}
}`

// metaSchemaCacheKey is the Validator.schemas cache key the compiled
// draft-4 meta-schema is stored under.
const metaSchemaCacheKey = "draft4-meta"

// draft4Validator returns a *gojsonschema.Schema compiled from the
// embedded draft-4 meta-schema, compiled at most once per Validator
// and reused for every schema it checks (see Validator.schemas).
func (v *Validator) draft4Validator() (*gojsonschema.Schema, error) {
	if schema, ok := v.schemas.Get(metaSchemaCacheKey); ok {
		return schema, nil
	}
	loader := gojsonschema.NewStringLoader(draft4MetaSchema)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, err
	}
	v.schemas.Set(metaSchemaCacheKey, schema)
	return schema, nil
}
