package expand

// toYAMLValue converts Result into the plain map/slice shape
// gopkg.in/yaml.v3 serializes in stable, non-flow style (spec §4.5
// step 6). Built by hand rather than via struct tags so that
// invariant I3 — a template-node's "resources" key is present only
// when it emitted at least one child — can be enforced precisely:
// the key is simply never set on a node with no children, rather than
// set to an empty (and therefore always-present) slice.
func (r *Result) toYAMLValue() map[string]any {
	return map[string]any{
		"config": configToYAMLValue(r.Config),
		"layout": layoutToYAMLValue(r.Layout),
	}
}

func configToYAMLValue(cfg Config) map[string]any {
	resources := make([]any, len(cfg.Resources))
	for i, res := range cfg.Resources {
		resources[i] = res
	}
	return map[string]any{"resources": resources}
}

func layoutToYAMLValue(layout Layout) map[string]any {
	resources := make([]any, len(layout.Resources))
	for i, node := range layout.Resources {
		resources[i] = node.toYAMLValue()
	}
	out := map[string]any{"resources": resources}
	if len(layout.Outputs) > 0 {
		out["outputs"] = outputsToYAMLValue(layout.Outputs)
	}
	return out
}

func (n *LayoutNode) toYAMLValue() map[string]any {
	out := map[string]any{"name": n.Name, "type": n.Type}
	if n.Properties != nil {
		out["properties"] = n.Properties
	}
	if len(n.Resources) > 0 {
		children := make([]any, len(n.Resources))
		for i, child := range n.Resources {
			children[i] = child.toYAMLValue()
		}
		out["resources"] = children
	}
	return out
}

func outputsToYAMLValue(outputs []Output) []any {
	out := make([]any, len(outputs))
	for i, o := range outputs {
		out[i] = map[string]any{"name": o.Name, "value": o.Value}
	}
	return out
}
