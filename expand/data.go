// Package expand implements the Expansion Driver (spec §4.5): the
// top-level Expand entry point, recursive per-resource processing
// with the Pending→Rendered→Validated→Expanded→Wired→Emitted state
// machine, uniqueness checks, layout-tree construction, and output
// wiring. It is grounded on expandybird/expansion/expansion.py's
// `_Expand`/`_ProcessResource`/`_ProcessTargetConfig` trio from the
// original source tree, and on the teacher's schema.go/load.go for
// the Go data-model shape and YAML-first entry point convention.
package expand

import "github.com/newstack-cloud/tmplexpand/refengine"

// Output is one {name, value} pair a template declares in its
// rendered body's top-level "outputs:" list (spec §3 "Resource...
// outputs").
type Output = refengine.Output

// Import is one normalized import entry: {path, content}, the shape
// every caller-supplied import is converted to regardless of which
// of the two accepted shapes it arrived in (spec §6).
type Import struct {
	Path    string
	Content string
}

// Resource is the root document's resource shape before processing:
// a bag of arbitrary keys decoded straight off YAML, read via the
// accessor helpers below rather than a fixed struct, since a
// resource's "properties" are arbitrary user-defined nested data
// (spec §3 "Resource").
type Resource map[string]any

func (r Resource) name() (string, bool) {
	name, ok := r["name"].(string)
	return name, ok
}

func (r Resource) typeName() (string, bool) {
	t, ok := r["type"].(string)
	return t, ok
}

func (r Resource) properties() map[string]any {
	props, _ := r["properties"].(map[string]any)
	return props
}

func (r Resource) setProperties(props map[string]any) {
	r["properties"] = props
}

// LayoutNode is one node of the hierarchical expansion tree (spec §3
// "layout.resources"). Resources is nil (and therefore omitted from
// the emitted YAML, invariant I3) unless this node is a template that
// emitted at least one child resource.
type LayoutNode struct {
	Name       string
	Type       string
	Properties map[string]any
	Resources  []*LayoutNode
	Outputs    []Output
}

// Layout is the top-level layout tree plus the root's own resolved
// outputs (spec §3 "layout.outputs: present only when output
// processing is enabled and the root template declares outputs").
type Layout struct {
	Resources []*LayoutNode
	Outputs   []Output
}

// Config is the flattened, pre-order list of primitive resources
// (spec §3 "config.resources").
type Config struct {
	Resources []map[string]any
}

// Result is the full {config, layout} expansion result serialized by
// Expand.
type Result struct {
	Config Config
	Layout Layout
}
