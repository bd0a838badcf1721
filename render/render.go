package render

import (
	"github.com/newstack-cloud/tmplexpand/core"
	"gopkg.in/yaml.v3"
)

// Render evaluates the template at templatePath (whose content is
// source) against ctx, dispatching between the text-template and
// script paths by filename suffix (spec §4.4). It returns the whole
// rendered document, already checked to carry a top-level "resources"
// key.
func (e *Engine) Render(templatePath, source string, ctx Context) (map[string]any, error) {
	switch {
	case core.IsScriptImport(templatePath):
		return renderScript(templatePath, source, ctx, e.Sandbox)
	case core.IsTextTemplateImport(templatePath):
		return renderText(templatePath, source, ctx)
	default:
		return nil, errRenderFailed(templatePath, errUnknownTemplateKind)
	}
}

var errUnknownTemplateKind = unknownTemplateKindError{}

type unknownTemplateKindError struct{}

func (unknownTemplateKindError) Error() string {
	return "template path does not match a known script or text-template suffix"
}

// parseRenderResultString re-parses a string render output as
// YAML/JSON (spec §4.4 "the result is re-parsed (if a string)") and
// validates the resources key.
func parseRenderResultString(templatePath, out string) (map[string]any, error) {
	var parsed any
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, errRenderFailed(templatePath, err)
	}
	return parseRenderResult(templatePath, parsed)
}

// parseRenderResult validates that a render output (already a parsed
// document, not a string) is a mapping carrying a top-level
// "resources" key (spec §4.4 "must contain a top-level resources
// key; otherwise the render fails").
func parseRenderResult(templatePath string, parsed any) (map[string]any, error) {
	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, errNoResourcesField(templatePath)
	}
	if _, hasResources := doc["resources"]; !hasResources {
		return nil, errNoResourcesField(templatePath)
	}
	return doc, nil
}

// parseAnyRenderResult accepts either render output shape (spec §4.4
// "the renderer accepts two equally-valid output shapes: a YAML/JSON
// string or a document already parsed into a mapping"), re-parsing
// only when the result is a string.
func parseAnyRenderResult(templatePath string, result any) (map[string]any, error) {
	if s, ok := result.(string); ok {
		return parseRenderResultString(templatePath, s)
	}
	return parseRenderResult(templatePath, result)
}
