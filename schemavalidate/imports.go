package schemavalidate

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// importsMicroSchema is the fixed micro-schema a schema document's
// optional "imports:" section must satisfy (spec §4.3 step 1),
// grounded on the teacher's own `IMPORT_SCHEMA` constant in
// schema_validation.py: an array of unique objects requiring `path`
// and disallowing any key beyond `path`/`name`.
const importsMicroSchema = `{
  "type": "object",
  "properties": {
    "imports": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path"],
        "properties": {
          "path": { "type": "string" },
          "name": { "type": "string" }
        },
        "additionalProperties": false
      },
      "uniqueItems": true
    }
  }
}`

// importsSchemaCacheKey is the Validator.schemas cache key the
// compiled imports micro-schema is stored under.
const importsSchemaCacheKey = "imports-micro"

func (v *Validator) importsValidator() (*gojsonschema.Schema, error) {
	if schema, ok := v.schemas.Get(importsSchemaCacheKey); ok {
		return schema, nil
	}
	loader := gojsonschema.NewStringLoader(importsMicroSchema)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, err
	}
	v.schemas.Set(importsSchemaCacheKey, schema)
	return schema, nil
}

// importEntries reads the schema document's "imports" section as a
// slice of {path, name} pairs. It assumes the section has already
// passed importsValidator, so every element is a well-shaped object
// map.
func importEntries(schema map[string]any) []importRef {
	raw, ok := schema["imports"].([]any)
	if !ok {
		return nil
	}

	entries := make([]importRef, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		path, _ := obj["path"].(string)
		name, hasName := obj["name"].(string)
		if !hasName || name == "" {
			name = path
		}
		entries = append(entries, importRef{Path: path, Name: name})
	}
	return entries
}

type importRef struct {
	Path string
	Name string
}

// checkImportsIncluded verifies every schema-declared import (falling
// back to path when name is absent, per spec §4.3 step 2) is present
// in the caller-supplied import map.
func checkImportsIncluded(entries []importRef, schemaName string, imports map[string]string) []error {
	var errs []error
	for _, entry := range entries {
		if _, ok := imports[entry.Name]; !ok {
			errs = append(errs, fmt.Errorf(
				"File '%s' requested in schema '%s' but not included with imports.",
				entry.Name, schemaName))
		}
	}
	return errs
}

// hasNonEmptyImportsSection reports whether schema declares a
// non-empty "imports:" list, the condition the teacher gates import
// validation on (`validating_imports = IMPORTS in schema and
// schema[IMPORTS]`).
func hasNonEmptyImportsSection(schema map[string]any) bool {
	raw, ok := schema["imports"].([]any)
	return ok && len(raw) > 0
}
