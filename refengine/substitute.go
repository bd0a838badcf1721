package refengine

import (
	"fmt"
	"strings"

	"github.com/newstack-cloud/tmplexpand/core"
)

// IsReferenceShaped reports whether v is a string that contains at
// least the `$(ref.` opener. schemavalidate uses this to filter out
// constraint errors raised against values that will only become
// meaningful after reference substitution runs (spec §4.3 step 4).
func IsReferenceShaped(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return ContainsReference(s)
}

// SubstituteString rewrites every `$(ref.NAME.PATH)` token in s:
//
//   - when outputs has no entry for NAME, the token is left verbatim
//     (spec §4.1 "Substitution policy" / invariant I4: a primitive
//     resource may supply the value at apply time)
//   - when outputs has an entry for NAME but PATH does not resolve,
//     an error is raised (this signals a typo rather than a forward
//     reference)
//   - otherwise the resolved value is stringified in place; non-string
//     values use the same textual form the original engine produced
//     with Python's str(), approximated here with fmt's %v, except nil
//     which renders as the YAML spelling "null"
func SubstituteString(s string, outputs OutputMap) (string, error) {
	var b strings.Builder
	cursor := 0
	for {
		match, ok, err := FindNext(s, cursor)
		if err != nil {
			return "", err
		}
		if !ok {
			b.WriteString(s[cursor:])
			break
		}

		b.WriteString(s[cursor:match.Start])

		byName, known := outputs[match.Name]
		if !known {
			b.WriteString(s[match.Start:match.End])
			cursor = match.End
			continue
		}

		value, err := ResolvePath(match.Name, match.Path, mapToAny(byName))
		if err != nil {
			return "", &core.Error{ReasonCode: ReasonCodeUnresolvableName, Err: err}
		}
		b.WriteString(stringifyValue(value))
		cursor = match.End
	}

	return b.String(), nil
}

func stringifyValue(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func mapToAny(m map[string]any) any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Traverse recursively descends doc, substituting every reference in
// every string value against outputs. Mappings and sequences are
// rebuilt with the same keys/order and substituted children; scalars
// other than strings are returned unchanged. Per invariant I4,
// substitution is order-independent up to the set of resolvable
// (name, path) pairs, so the traversal order below (map then slice
// then string) has no observable effect on the result.
func Traverse(doc core.Document, outputs OutputMap) (core.Document, error) {
	switch v := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			substituted, err := Traverse(val, outputs)
			if err != nil {
				return nil, err
			}
			out[key] = substituted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			substituted, err := Traverse(val, outputs)
			if err != nil {
				return nil, err
			}
			out[i] = substituted
		}
		return out, nil
	case string:
		return SubstituteString(v, outputs)
	default:
		return v, nil
	}
}

// CollectReferences recursively descends doc and gathers every
// well-formed `$(ref.NAME.PATH)` occurrence without substituting
// anything, the collector mode of traversal described in spec §4.1
// step "Traversal" (b) vs (a). This is used to enumerate references
// made against a document (for diagnostics or testing) independently
// of whether an output map is yet available.
func CollectReferences(doc core.Document) ([]Match, error) {
	var collected []Match
	var walk func(core.Document) error
	walk = func(d core.Document) error {
		switch v := d.(type) {
		case map[string]any:
			for _, val := range v {
				if err := walk(val); err != nil {
					return err
				}
			}
		case []any:
			for _, val := range v {
				if err := walk(val); err != nil {
					return err
				}
			}
		case string:
			cursor := 0
			for {
				match, ok, err := FindNext(v, cursor)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				collected = append(collected, *match)
				cursor = match.End
			}
		}
		return nil
	}

	if err := walk(doc); err != nil {
		return nil, err
	}
	return collected, nil
}
