package expand

import (
	"errors"
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
	"github.com/newstack-cloud/tmplexpand/render"
)

// validateUniqueNames enforces spec invariant I2 within a single
// template's (or the root's) own resource list, grounded on
// expansion.py's _ValidateUniqueNames: a resource missing its own
// name is not reported here — that failure surfaces later when the
// resource itself is processed by processResource.
func validateUniqueNames(resources []Resource, templateName string) error {
	seen := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		name, ok := r.name()
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			return errNameNotUnique(name, templateName)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// processResource implements the Pending→Rendered→Validated→Expanded→
// Wired→Emitted state machine of spec §4.5 step 4. The only branch is
// at render time: a primitive resource (type is not an import key)
// skips straight to a stub layout node; a template resource expands,
// recurses over its emitted children, and accumulates their
// flattened config resources and ordered layout nodes onto its own
// node.
func processResource(inv *invocation, resource Resource) ([]map[string]any, *LayoutNode, error) {
	name, ok := resource.name()
	if !ok {
		inv.logger.Warn("resource is missing a name")
		return nil, nil, errMissingName()
	}
	typeName, ok := resource.typeName()
	if !ok {
		inv.logger.Warn("resource is missing a type", core.StringLogField("resourceName", name))
		return nil, nil, errMissingType()
	}

	resLogger := inv.logger.WithFields(
		core.StringLogField("resourceName", name),
		core.StringLogField("resourceType", typeName),
	)

	node := &LayoutNode{Name: name, Type: typeName}

	imp, isTemplate := inv.imports[typeName]
	if !isTemplate {
		resLogger.Debug("resource is primitive, passing through unchanged")
		return []map[string]any{map[string]any(resource)}, node, nil
	}

	resLogger.Debug("rendering template resource")
	expanded, err := expandTemplate(inv, resLogger, resource, typeName, imp)
	if err != nil {
		resLogger.Error("template render failed", core.ErrorLogField("error", err))
		return nil, nil, err
	}

	// Same map the validator filled defaults into: injected defaults show in the layout.
	node.Properties = resource.properties()
	node.Outputs = parseOutputs(expanded["outputs"])

	rawChildren, _ := expanded["resources"].([]any)
	if len(rawChildren) == 0 {
		return nil, node, nil
	}

	children := make([]Resource, len(rawChildren))
	for i, c := range rawChildren {
		m, ok := c.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("resource at index %d of template %q is not a mapping", i, typeName)
		}
		children[i] = Resource(m)
	}

	if err := validateUniqueNames(children, typeName); err != nil {
		resLogger.Error("duplicate child resource name", core.ErrorLogField("error", err))
		return nil, nil, err
	}

	resLogger.Debug("expanded template children", core.IntegerLogField("childCount", int64(len(children))))

	var childConfig []map[string]any
	for _, child := range children {
		cfg, childNode, err := processResource(inv, child)
		if err != nil {
			return nil, nil, err
		}
		childConfig = append(childConfig, cfg...)
		node.Resources = append(node.Resources, childNode)
	}

	return childConfig, node, nil
}

// expandTemplate renders one template resource, grounded on
// ExpandTemplate in expansion.py: resolve the schema (if enabled and
// declared), build the render context (properties/env/imports, each
// populated exactly when ExpandTemplate would have populated the
// equivalent resource key), and dispatch through the Template
// Renderer.
func expandTemplate(inv *invocation, resLogger core.Logger, resource Resource, typeName string, imp Import) (map[string]any, error) {
	schemaKey := typeName + core.SchemaSuffix
	if inv.validate {
		if _, declared := inv.schemaSource[schemaKey]; declared {
			resLogger.Debug("validating properties against schema", core.StringLogField("schema", schemaKey))
			validated, err := inv.schemaValidator.Validate(resource.properties(), schemaKey, typeName, inv.schemaSource)
			if err != nil {
				resLogger.Warn("schema validation failed", core.ErrorLogField("error", err))
				return nil, err
			}
			resource.setProperties(validated)
		}
	}

	env := make(map[string]string, len(inv.env)+2)
	for k, v := range inv.env {
		env[k] = v
	}
	env["name"], _ = resource.name()
	env["type"] = typeName

	ctx := render.Context{
		Properties: resource.properties(),
		Imports:    inv.renderImports,
		Env:        env,
	}

	doc, err := inv.renderEngine.Render(imp.Path, imp.Content, ctx)
	if err != nil {
		if isNoResourcesFieldError(err) {
			return nil, errNoResourcesField(typeName)
		}
		return nil, err
	}
	return doc, nil
}

// isNoResourcesFieldError reports whether err is render's structural
// "no resources key" failure, which expand re-raises identified by
// the template's import name rather than its resolved file path (see
// errNoResourcesField).
func isNoResourcesFieldError(err error) bool {
	var coreErr *core.Error
	if !errors.As(err, &coreErr) {
		return false
	}
	return coreErr.ReasonCode == render.ReasonCodeStructuralError
}

// parseOutputs converts a rendered template body's raw top-level
// "outputs" value (a list of {name, value} mappings, or absent) into
// the typed Output slice a LayoutNode carries, raw/unsubstituted —
// wiring happens once, after the full walk, per spec §4.5 step 5.
func parseOutputs(raw any) []Output {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	outputs := make([]Output, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		outputs = append(outputs, Output{Name: name, Value: m["value"]})
	}
	return outputs
}
