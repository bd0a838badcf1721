package schemavalidate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/newstack-cloud/tmplexpand/core"
)

const (
	// ReasonCodeSchemaNotFound is returned when a template names a
	// sibling schema that is absent from the caller-supplied imports.
	ReasonCodeSchemaNotFound core.ReasonCode = "schema_not_found"
	// ReasonCodeInvalidSchema marks a failure in the schema document
	// itself (meta-schema or imports micro-schema), as distinct from
	// ReasonCodeInvalidProperties (the schema is fine, the properties
	// fail it). Spec §4.3 step 5 requires this distinction survive in
	// the error object.
	ReasonCodeInvalidSchema core.ReasonCode = "invalid_schema"
	// ReasonCodeInvalidProperties marks a failure of the user's
	// properties against an otherwise-valid schema.
	ReasonCodeInvalidProperties core.ReasonCode = "invalid_properties"
)

func errSchemaNotFound(schemaName string) error {
	return &core.Error{
		ReasonCode: ReasonCodeSchemaNotFound,
		Err:        fmt.Errorf("Could not find schema file '%s'.", schemaName),
	}
}

func errInvalidSchema(schemaName string, childErrs []error) error {
	return &core.Error{
		ReasonCode:  ReasonCodeInvalidSchema,
		Err:         errors.New(buildMessage(fmt.Sprintf("Invalid schema '%s':", schemaName), childErrs)),
		ChildErrors: childErrs,
	}
}

func errInvalidProperties(templateName string, childErrs []error) error {
	return &core.Error{
		ReasonCode:  ReasonCodeInvalidProperties,
		Err:         errors.New(buildMessage(fmt.Sprintf("Invalid properties for '%s':", templateName), childErrs)),
		ChildErrors: childErrs,
	}
}

// buildMessage composes the human-readable multi-line diagnostic
// format used throughout the teacher's ValidationErrors.BuildMessage:
// a header line naming the offending schema or template, followed by
// one line per underlying error.
func buildMessage(header string, childErrs []error) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, e := range childErrs {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}
