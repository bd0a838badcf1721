package refengine

import (
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
)

const (
	// ReasonCodeMalformedReference is provided when the reason for a
	// reference engine failure is a `$(ref...)` token that is not
	// parenthesis-balanced.
	ReasonCodeMalformedReference core.ReasonCode = "malformed_reference"
	// ReasonCodeNoValueFound is provided when the reason for a
	// reference engine failure is a JSONPath expression that matched
	// nothing in the resolved target.
	ReasonCodeNoValueFound core.ReasonCode = "no_value_found"
	// ReasonCodeUnresolvableName is provided when the reason for a
	// reference engine failure is a substitution for a name that
	// exists in the output map but whose path could not be resolved.
	ReasonCodeUnresolvableName core.ReasonCode = "unresolvable_name"
)

func errMalformedReference(substring string) error {
	return &core.Error{
		ReasonCode: ReasonCodeMalformedReference,
		Err: fmt.Errorf(
			"malformed reference: %q is not a well-formed $(ref.NAME.PATH) token",
			substring,
		),
	}
}

func errNoValueFound(name string, path string) error {
	return &core.Error{
		ReasonCode: ReasonCodeNoValueFound,
		Err: fmt.Errorf(
			"no value found for path %q in output of %q",
			path, name,
		),
	}
}
