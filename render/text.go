package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v4"
)

// renderText evaluates a Jinja-compatible text template (spec §4.4
// "Text template" path). The pongo2 TemplateSet's loader is backed
// directly by the import map so that `{% include "helpers/common" %}`
// resolves against the caller-supplied imports rather than the host
// filesystem.
func renderText(templatePath, source string, ctx Context) (map[string]any, error) {
	set := pongo2.NewSet("tmplexpand", &importLoader{imports: ctx.Imports})

	tpl, err := set.FromString(source)
	if err != nil {
		return nil, errRenderFailed(templatePath, err)
	}

	var pctx pongo2.Context
	if !ctx.isEmpty() {
		pctx = pongo2.Context{}
		if ctx.hasProperties() {
			pctx["properties"] = ctx.Properties
		}
		if ctx.hasEnv() {
			pctx["env"] = ctx.Env
		}
		if ctx.hasImports() {
			pctx["imports"] = importsAsPlainMap(ctx.Imports)
		}
	}

	out, err := tpl.Execute(pctx)
	if err != nil {
		return nil, errRenderFailed(templatePath, err)
	}

	return parseRenderResultString(templatePath, out)
}

func importsAsPlainMap(imports map[string]Import) map[string]any {
	out := make(map[string]any, len(imports))
	for name, imp := range imports {
		out[name] = map[string]any{"path": imp.Path, "content": imp.Content}
	}
	return out
}

// importLoader adapts Context.Imports to pongo2.TemplateLoader,
// resolving `{% include %}` targets by the import entry's path
// rather than by filesystem lookup.
type importLoader struct {
	imports map[string]Import
}

func (l *importLoader) Abs(_, name string) string {
	return name
}

func (l *importLoader) Get(path string) (io.Reader, error) {
	for _, imp := range l.imports {
		if imp.Path == path {
			return strings.NewReader(imp.Content), nil
		}
	}
	return nil, fmt.Errorf("include: no import registered for path %q", path)
}
