// Package render implements the Template Renderer component (spec
// §4.4): evaluating one template — either a Jinja-compatible text
// template or a script template — against a properties/imports/env
// context, producing a parsed document that must carry a top-level
// "resources" key.
package render

import (
	"github.com/newstack-cloud/tmplexpand/sandbox"
)

// Import is one entry of the caller-supplied import map, exposed to
// a template as ctx.imports[name] (spec §4.4 "ctx.imports — the full
// import map (content + path)").
type Import struct {
	Path    string
	Content string
}

// Context is the template evaluation context, the ABI described in
// spec §4.4 and §9's "duck-typed evaluation context" redesign note:
// model ctx as a record with optional fields rather than a dynamic
// duck-typed object. A nil Properties/Env/Imports signals the field
// was absent on the originating resource, matching the teacher's
// "absent marker" wording.
type Context struct {
	Properties map[string]any
	Imports    map[string]Import
	Env        map[string]string
}

// hasProperties / hasEnv / hasImports gate whether the text-template
// renderer exposes these names at all (spec §4.4: "Render the
// template with a context exposing properties, env, and imports when
// any of these are present on the resource; otherwise render with no
// context").
func (c Context) hasProperties() bool { return c.Properties != nil }
func (c Context) hasEnv() bool        { return c.Env != nil }
func (c Context) hasImports() bool    { return c.Imports != nil }

func (c Context) isEmpty() bool {
	return !c.hasProperties() && !c.hasEnv() && !c.hasImports()
}

// Engine holds the per-invocation dependencies a render needs but
// that do not belong on the per-call Context: the sandbox namespace
// script templates import helper modules from. Spec §5 requires this
// live on a per-call handle rather than process-global state.
type Engine struct {
	Sandbox *sandbox.Loader
}
