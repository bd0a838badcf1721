// Package schemavalidate implements the Schema Validator component
// (spec §4.3): draft-4 schema well-formedness checking, the fixed
// imports micro-schema, default-value injection (including through
// local "$ref" indirection), and constraint validation filtered to
// ignore reference-shaped property values. It is grounded on
// expandybird/expansion/schema_validation.py and
// schema_validation_utils.py from the original source tree, adapted
// from exception-driven jsonschema-validator-keyword overrides to an
// explicit result-filtering walk (spec §9).
package schemavalidate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/newstack-cloud/tmplexpand/core"
	"github.com/newstack-cloud/tmplexpand/refengine"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Validator compiles and caches the gojsonschema schemas Validate
// needs: the fixed draft-4 meta-schema, the fixed imports
// micro-schema, and one compiled constraint schema per schemaName
// seen. Each expand.Expand call builds its own Validator (held by the
// per-call invocation in expand/engine.go) rather than the package
// relying on process-global state, so compiling a
// schema once serves every resource in a call's recursive tree
// without leaking compiled state across unrelated calls.
type Validator struct {
	schemas *core.Cache[*gojsonschema.Schema]
}

// NewValidator creates a Validator with an empty schema cache.
func NewValidator() *Validator {
	return &Validator{schemas: core.NewCache[*gojsonschema.Schema]()}
}

// Validate checks properties against the schema named schemaName
// (looked up in imports), injecting defaults and returning the
// (possibly mutated) properties map. A nil properties value is
// treated as an empty object (spec §4.3 "Special cases").
//
// Validate is the package-level convenience form for callers that
// don't need compiled-schema reuse across several calls; it builds a
// throwaway Validator for the one call.
func Validate(properties map[string]any, schemaName, templateName string, imports map[string]string) (map[string]any, error) {
	return NewValidator().Validate(properties, schemaName, templateName, imports)
}

// Validate is the Validator-owning form of the package-level Validate
// function, reusing this Validator's compiled-schema cache.
func (v *Validator) Validate(properties map[string]any, schemaName, templateName string, imports map[string]string) (map[string]any, error) {
	rawSchema, ok := imports[schemaName]
	if !ok {
		return nil, errSchemaNotFound(schemaName)
	}

	if properties == nil {
		properties = map[string]any{}
	}

	normalized := tolerantJSON(rawSchema)

	var parsed any
	if err := yaml.Unmarshal([]byte(normalized), &parsed); err != nil {
		return nil, errInvalidSchema(schemaName, []error{fmt.Errorf("could not parse schema: %w", err)})
	}

	// An empty schema is a no-op passthrough (spec §4.3 "Special cases").
	if parsed == nil {
		return properties, nil
	}
	schema, ok := parsed.(map[string]any)
	if !ok {
		return nil, errInvalidSchema(schemaName, []error{errors.New("schema document must be a mapping")})
	}
	if len(schema) == 0 {
		return properties, nil
	}

	validatingImports := hasNonEmptyImportsSection(schema)

	if err := v.validateSchemaStructure(schema, validatingImports, schemaName, normalized); err != nil {
		return nil, err
	}

	var propertyErrs []error

	if validatingImports {
		propertyErrs = append(propertyErrs, checkImportsIncluded(importEntries(schema), schemaName, imports)...)
	}

	// Step 1: mutate properties in place, filling in defaults before
	// anything judges a property "missing" (spec §4.3 step 3).
	if err := injectDefaults(schema, schema, properties); err != nil {
		return nil, errInvalidSchema(schemaName, []error{
			err,
			errors.New("Perhaps you forgot to put 'quotes' around your reference."),
		})
	}

	// Step 2: run the unmodified draft-4 validator over the
	// default-enriched properties, filtering out errors whose
	// offending value is reference-shaped (spec §4.3 step 4).
	constraintErrs, err := v.validateConstraints(schemaName, schema, properties)
	if err != nil {
		return nil, errInvalidSchema(schemaName, []error{
			err,
			errors.New("Perhaps you forgot to put 'quotes' around your reference."),
		})
	}
	propertyErrs = append(propertyErrs, constraintErrs...)

	if len(propertyErrs) > 0 {
		return nil, errInvalidProperties(templateName, propertyErrs)
	}

	return properties, nil
}

// validateSchemaStructure performs spec §4.3 step 1: the schema
// itself must satisfy the draft-4 meta-schema, and if it declares an
// "imports:" section, that section must satisfy the fixed imports
// micro-schema.
func (v *Validator) validateSchemaStructure(schema map[string]any, validatingImports bool, schemaName, normalizedSource string) error {
	var schemaErrs []error

	if validatingImports {
		importsSchema, err := v.importsValidator()
		if err != nil {
			return errInvalidSchema(schemaName, []error{err})
		}
		result, err := importsSchema.Validate(gojsonschema.NewGoLoader(schema))
		if err != nil {
			return errInvalidSchema(schemaName, []error{err})
		}
		for _, resErr := range result.Errors() {
			schemaErrs = append(schemaErrs, describeSchemaError(resErr, normalizedSource))
		}
	}

	metaValidator, err := v.draft4Validator()
	if err != nil {
		return errInvalidSchema(schemaName, []error{err})
	}
	result, err := metaValidator.Validate(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return errInvalidSchema(schemaName, []error{err})
	}
	for _, resErr := range result.Errors() {
		schemaErrs = append(schemaErrs, describeSchemaError(resErr, normalizedSource))
	}

	if len(schemaErrs) > 0 {
		return errInvalidSchema(schemaName, schemaErrs)
	}
	return nil
}

// describeSchemaError formats a schema well-formedness error and, when
// the offending field is a top-level schema key and the schema source
// parses as JSON, appends a "(line N)" location hint resolved via
// topLevelKeyLine.
func describeSchemaError(resErr gojsonschema.ResultError, normalizedSource string) error {
	base := describeResultError(resErr)

	topKey := strings.TrimPrefix(resErr.Field(), "(root).")
	if idx := strings.IndexAny(topKey, ".["); idx >= 0 {
		topKey = topKey[:idx]
	}

	if line, ok := topLevelKeyLine(normalizedSource, topKey); ok {
		return fmt.Errorf("%s (line %d)", base.Error(), line)
	}
	return base
}

// validateConstraints runs the draft-4 validator over properties
// against schema and returns every error whose offending value is
// not reference-shaped (spec §4.3 step 4; see refengine.IsReferenceShaped).
// The compiled constraint schema is cached under schemaName so that
// expanding the same template type repeatedly in one recursive walk
// compiles it once.
func (v *Validator) validateConstraints(schemaName string, schema map[string]any, properties map[string]any) ([]error, error) {
	cacheKey := "constraint:" + schemaName
	validator, ok := v.schemas.Get(cacheKey)
	if !ok {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
		if err != nil {
			return nil, err
		}
		validator = compiled
		v.schemas.Set(cacheKey, validator)
	}

	result, err := validator.Validate(gojsonschema.NewGoLoader(properties))
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, resErr := range result.Errors() {
		if refengine.IsReferenceShaped(resErr.Value()) {
			continue
		}
		errs = append(errs, describeResultError(resErr))
	}
	return errs, nil
}

func describeResultError(resErr gojsonschema.ResultError) error {
	field := resErr.Field()
	if field == "" || field == "(root)" {
		return errors.New(resErr.Description())
	}
	return fmt.Errorf("%s at [%s]", resErr.Description(), field)
}
