package expand

import (
	"bytes"
	"strings"

	"github.com/newstack-cloud/tmplexpand/core"
	"gopkg.in/yaml.v3"
)

// Expand evaluates configText against imports and env, matching
// the original source's top-level Expand/_Expand split (spec §4.5):
// imports accepts either of the two shapes named in spec §6, via
// NormalizeImports.
func (e *Engine) Expand(configText string, imports map[string]any, env map[string]string, validateSchema, wantOutputs bool) (string, error) {
	var parsed any
	if err := yaml.Unmarshal([]byte(configText), &parsed); err != nil {
		e.Logger.Error("failed to parse config as YAML", core.ErrorLogField("error", err))
		return "", errParseYAML(err.Error())
	}

	// Empty input (or a document that is literally YAML null).
	if parsed == nil {
		return "", nil
	}

	doc, ok := parsed.(map[string]any)
	if !ok {
		// Scalar (no ':' in the source) — return verbatim. A string
		// parses to itself; any other scalar is re-rendered through
		// YAML to produce an equivalent textual form.
		if s, ok := parsed.(string); ok {
			return s, nil
		}
		out, err := yaml.Marshal(parsed)
		if err != nil {
			return "", errParseYAML(err.Error())
		}
		return strings.TrimRight(string(out), "\n"), nil
	}

	rawResources, has := doc["resources"]
	if !has || rawResources == nil {
		rawResources = []any{}
	}
	rawResourceList, ok := rawResources.([]any)
	if !ok {
		rawResourceList = []any{}
	}

	resources := make([]Resource, len(rawResourceList))
	for i, r := range rawResourceList {
		m, ok := r.(map[string]any)
		if !ok {
			return "", errMissingName()
		}
		resources[i] = Resource(m)
	}

	if err := validateUniqueNames(resources, "config"); err != nil {
		e.Logger.Error("duplicate resource name in config", core.ErrorLogField("error", err))
		return "", err
	}

	normalizedImports, err := NormalizeImports(imports)
	if err != nil {
		e.Logger.Error("failed to normalize imports", core.ErrorLogField("error", err))
		return "", err
	}

	inv, err := newInvocation(e.Logger, normalizedImports, env, validateSchema, wantOutputs)
	if err != nil {
		return "", err
	}

	result := &Result{}
	for _, r := range resources {
		childConfig, node, err := processResource(inv, r)
		if err != nil {
			inv.logger.Error("resource expansion failed", core.ErrorLogField("error", err))
			return "", err
		}
		result.Config.Resources = append(result.Config.Resources, childConfig...)
		result.Layout.Resources = append(result.Layout.Resources, node)
	}

	if wantOutputs {
		rawOutputs, _ := doc["outputs"].([]any)
		if err := wireOutputs(result, rawOutputs); err != nil {
			inv.logger.Error("output wiring failed", core.ErrorLogField("error", err))
			return "", err
		}
	}

	inv.logger.Info(
		"expansion invocation complete",
		core.IntegerLogField("configResourceCount", int64(len(result.Config.Resources))),
	)

	return marshalCanonical(result.toYAMLValue())
}

// marshalCanonical serializes v in a stable, non-flow style with a
// two-space indent (spec §4.5 step 6), matching the indentation the
// canonical empty response example uses. yaml.v3's default Marshal
// indent is four spaces, so an Encoder with an explicit indent is
// used instead of the package-level Marshal function.
func marshalCanonical(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", errParseYAML(err.Error())
	}
	if err := enc.Close(); err != nil {
		return "", errParseYAML(err.Error())
	}
	return buf.String(), nil
}

// Expand is the package-level convenience entry point for callers
// that do not need a long-lived Engine (spec §6 "Core entry point").
// It constructs a fresh per-call Engine, consistent with §5's "no
// process-globals" contract: nothing here is reused across calls.
func Expand(configText string, imports map[string]any, env map[string]string, validateSchema, wantOutputs bool) (string, error) {
	return NewEngine(nil).Expand(configText, imports, env, validateSchema, wantOutputs)
}
