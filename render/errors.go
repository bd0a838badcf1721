package render

import (
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
)

const (
	// ReasonCodeRenderFailed marks any failure while evaluating a
	// template (text or script): a Jinja syntax error, a Lua runtime
	// panic, or a script that never defines GenerateConfig.
	ReasonCodeRenderFailed core.ReasonCode = "render_failed"
	// ReasonCodeStructuralError marks a template whose output is not
	// a mapping carrying a top-level "resources" key (spec §4.4 "the
	// renderer accepts two... output shapes").
	ReasonCodeStructuralError core.ReasonCode = "structural_error"
)

// errRenderFailed wraps cause with the offending template's path and
// tags it as a render error (spec §7 "Render error... includes file
// name and a captured backtrace" — trace is cause's own error chain,
// Go has no Python-style traceback object to carry separately).
func errRenderFailed(templatePath string, cause error) error {
	return &core.Error{
		ReasonCode: ReasonCodeRenderFailed,
		Err:        fmt.Errorf("error rendering template %q: %w", templatePath, cause),
	}
}

func errNoResourcesField(templatePath string) error {
	return &core.Error{
		ReasonCode: ReasonCodeStructuralError,
		Err:        fmt.Errorf("Template did not return a 'resources:' field. (%s)", templatePath),
	}
}
