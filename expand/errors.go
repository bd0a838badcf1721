package expand

import (
	"errors"
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
)

const (
	// ReasonCodeParseError marks the root document (or a template's
	// rendered output) failing to parse as YAML.
	ReasonCodeParseError core.ReasonCode = "parse_error"
	// ReasonCodeStructuralError marks a missing name/type, a
	// non-unique name, or a template whose render produced no
	// "resources:" field.
	ReasonCodeStructuralError core.ReasonCode = "structural_error"
)

func errParseYAML(detail string) error {
	return &core.Error{
		ReasonCode: ReasonCodeParseError,
		Err:        fmt.Errorf("Error parsing YAML: %s", sanitizeYAMLError(detail)),
	}
}

// sanitizeYAMLError replaces the unhelpful `"<string>"` substring
// gopkg.in/yaml.v3 sometimes emits for string-sourced documents with
// the word "template", matching the teacher's own string-replace
// (spec §7 "Parse error"), grounded on expansion.py's identical
// `.replace('"<string>"', 'template')`.
func sanitizeYAMLError(msg string) string {
	const placeholder = `"<string>"`
	out := make([]byte, 0, len(msg))
	for i := 0; i < len(msg); {
		if i+len(placeholder) <= len(msg) && msg[i:i+len(placeholder)] == placeholder {
			out = append(out, "template"...)
			i += len(placeholder)
			continue
		}
		out = append(out, msg[i])
		i++
	}
	return string(out)
}

func errMissingName() error {
	return &core.Error{
		ReasonCode: ReasonCodeStructuralError,
		Err:        errors.New("Resource does not have a name."),
	}
}

func errMissingType() error {
	return &core.Error{
		ReasonCode: ReasonCodeStructuralError,
		Err:        errors.New("Resource does not have type defined."),
	}
}

func errNameNotUnique(name, scope string) error {
	return &core.Error{
		ReasonCode: ReasonCodeStructuralError,
		Err:        fmt.Errorf("Resource name '%s' is not unique in %s.", name, scope),
	}
}

// errNoResourcesField mirrors expansion.py's `ExpansionError(
// resource['type'], 'Template did not return a \'resources:\' field.')`
// — identified by the template's type/import name, not its resolved
// file path, which is why this is a fresh error rather than a reuse
// of render's own path-identified structural error.
func errNoResourcesField(templateType string) error {
	return &core.Error{
		ReasonCode: ReasonCodeStructuralError,
		Err:        fmt.Errorf("Template did not return a 'resources:' field. (%s)", templateType),
	}
}
