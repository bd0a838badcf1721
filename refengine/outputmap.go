package refengine

// NamedOutputs pairs a resource (or template) name with the outputs
// it declared, the shape the Expansion Driver hands over to build an
// OutputMap without refengine needing to import the expand package's
// layout types (avoiding a package cycle).
type NamedOutputs struct {
	Name    string
	Outputs []Output
}

// Output is a single declared `{name, value}` output pair.
type Output struct {
	Name  string
	Value any
}

// OutputMap is `name -> (output-name -> output-value)`, built from a
// template's outermost resource list (spec §3 "Output map").
type OutputMap map[string]map[string]any

// BuildOutputMap constructs an OutputMap from the outermost layout
// resources. Per spec §4.5 step 5, this only ever looks at the
// outermost list, never the full recursive tree, so nested templates'
// internal outputs are not directly addressable by name collision
// with an outer resource of the same name.
func BuildOutputMap(nodes []NamedOutputs) OutputMap {
	outputMap := make(OutputMap, len(nodes))
	for _, node := range nodes {
		if len(node.Outputs) == 0 {
			continue
		}
		byName := make(map[string]any, len(node.Outputs))
		for _, output := range node.Outputs {
			byName[output.Name] = output.Value
		}
		outputMap[node.Name] = byName
	}
	return outputMap
}
