package expand

import (
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
	"github.com/newstack-cloud/tmplexpand/render"
	"github.com/newstack-cloud/tmplexpand/sandbox"
)

// NormalizeImports converts the caller-supplied import map into the
// single internal shape regardless of which of the two accepted
// shapes each entry arrived in (spec §6 "legacy callers may supply
// importName -> content directly; implementations MUST accept both
// and normalize"): an entry may be a {path, content} mapping, or a
// bare content string (the legacy shape, where the import name
// doubles as its own path, mirroring ExpandTemplate's `path =
// source_file` fallback in the original source).
func NormalizeImports(raw map[string]any) (map[string]Import, error) {
	out := make(map[string]Import, len(raw))
	for name, v := range raw {
		switch entry := v.(type) {
		case string:
			out[name] = Import{Path: name, Content: entry}
		case map[string]any:
			path, _ := entry["path"].(string)
			if path == "" {
				path = name
			}
			content, _ := entry["content"].(string)
			out[name] = Import{Path: path, Content: content}
		default:
			return nil, fmt.Errorf("import %q has an unsupported shape %T", name, v)
		}
	}
	return out, nil
}

// flattenForSchemaValidation reduces the normalized import map to the
// name -> content shape schemavalidate.Validate expects, the shape
// its "imports" parameter is keyed by for both the schema's own
// lookup and its "imports:" section completeness check (spec §4.3
// step 2).
func flattenForSchemaValidation(imports map[string]Import) map[string]string {
	out := make(map[string]string, len(imports))
	for name, imp := range imports {
		out[name] = imp.Content
	}
	return out
}

// toRenderImports adapts the internal Import shape to render.Import
// for handoff to the Template Renderer.
func toRenderImports(imports map[string]Import) map[string]render.Import {
	out := make(map[string]render.Import, len(imports))
	for name, imp := range imports {
		out[name] = render.Import{Path: imp.Path, Content: imp.Content}
	}
	return out
}

// toSandboxEntries selects only the script-suffixed imports (spec
// §4.2 step 2: "Imports whose path targets the text-templating
// language are excluded from this namespace") and adapts them to
// sandbox.Entry for installation into a fresh Loader.
func toSandboxEntries(imports map[string]Import) map[string]sandbox.Entry {
	out := make(map[string]sandbox.Entry, len(imports))
	for name, imp := range imports {
		if !core.IsScriptImport(imp.Path) {
			continue
		}
		out[name] = sandbox.Entry{Path: imp.Path, Content: imp.Content}
	}
	return out
}
