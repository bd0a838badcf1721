package expand

import "github.com/newstack-cloud/tmplexpand/refengine"

// wireOutputs performs spec §4.5 step 5's output wiring, run exactly
// once after the full recursive walk completes — deliberately NOT the
// original source's per-template-node recursive _ProcessTargetConfig
// call (see the divergence recorded in DESIGN.md): the output map is
// built solely from the outermost layout resources, never the full
// tree, per the spec's explicit "(not the recursive tree)" wording.
func wireOutputs(result *Result, rootOutputs []any) error {
	outputMap := refengine.BuildOutputMap(namedOutputsFromNodes(result.Layout.Resources))

	if len(rootOutputs) > 0 {
		outputs := parseOutputs(rootOutputs)
		resolved, err := resolveOutputs(outputs, outputMap)
		if err != nil {
			return err
		}
		result.Layout.Outputs = resolved
	}

	for _, res := range result.Config.Resources {
		props, ok := res["properties"]
		if !ok {
			continue
		}
		substituted, err := refengine.Traverse(props, outputMap)
		if err != nil {
			return err
		}
		res["properties"] = substituted
	}

	return nil
}

func namedOutputsFromNodes(nodes []*LayoutNode) []refengine.NamedOutputs {
	named := make([]refengine.NamedOutputs, len(nodes))
	for i, node := range nodes {
		named[i] = refengine.NamedOutputs{Name: node.Name, Outputs: node.Outputs}
	}
	return named
}

// resolveOutputs substitutes references in the root template's own
// declared outputs (spec §4.5 step 5 "Traverse layout.outputs ...").
func resolveOutputs(outputs []Output, outputMap refengine.OutputMap) ([]Output, error) {
	resolved := make([]Output, len(outputs))
	for i, o := range outputs {
		value, err := refengine.Traverse(o.Value, outputMap)
		if err != nil {
			return nil, err
		}
		resolved[i] = Output{Name: o.Name, Value: value}
	}
	return resolved, nil
}
