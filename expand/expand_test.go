package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustParse(t *testing.T, out string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	return doc
}

func TestExpandEmptyInputReturnsEmptyString(t *testing.T) {
	out, err := Expand("", nil, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestExpandScalarInputReturnedVerbatim(t *testing.T) {
	out, err := Expand("just a string", nil, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, "just a string", out)
}

func TestExpandNullResourcesGivesCanonicalEmptyResponse(t *testing.T) {
	out, err := Expand("resources:\n", nil, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, "config:\n  resources: []\nlayout:\n  resources: []\n", out)
}

// Scenario 1: simple pass-through.
func TestExpandSimplePassThrough(t *testing.T) {
	config := "resources:\n- name: x\n  type: compute.v1.instance\n  properties:\n    size: big\n"

	out, err := Expand(config, nil, nil, false, false)
	require.NoError(t, err)

	doc := mustParse(t, out)
	cfgResources := doc["config"].(map[string]any)["resources"].([]any)
	require.Len(t, cfgResources, 1)
	res := cfgResources[0].(map[string]any)
	assert.Equal(t, "x", res["name"])
	assert.Equal(t, "compute.v1.instance", res["type"])

	layoutResources := doc["layout"].(map[string]any)["resources"].([]any)
	require.Len(t, layoutResources, 1)
	node := layoutResources[0].(map[string]any)
	assert.Equal(t, "x", node["name"])
	assert.Equal(t, "compute.v1.instance", node["type"])
	assert.NotContains(t, node, "resources")
}

// Scenario 2: script template.
func TestExpandScriptTemplate(t *testing.T) {
	config := "resources:\n- name: r\n  type: py.py\n"
	imports := map[string]any{
		"py.py": map[string]any{
			"path": "py.py",
			"content": "function GenerateConfig(ctx)\n" +
				"  return \"resources:\\n- name: myBackend\\n  type: compute.v1.instance\\n  properties:\\n    machineSize: big\\n\"\n" +
				"end\n",
		},
	}

	out, err := Expand(config, imports, nil, false, false)
	require.NoError(t, err)

	doc := mustParse(t, out)
	cfgResources := doc["config"].(map[string]any)["resources"].([]any)
	require.Len(t, cfgResources, 1)
	child := cfgResources[0].(map[string]any)
	assert.Equal(t, "myBackend", child["name"])
	assert.Equal(t, "compute.v1.instance", child["type"])
	assert.Equal(t, "big", child["properties"].(map[string]any)["machineSize"])

	layoutResources := doc["layout"].(map[string]any)["resources"].([]any)
	node := layoutResources[0].(map[string]any)
	assert.Equal(t, "r", node["name"])
	grandchildren := node["resources"].([]any)
	require.Len(t, grandchildren, 1)
	assert.Equal(t, "myBackend", grandchildren[0].(map[string]any)["name"])
}

// Scenario 3: schema defaults.
func TestExpandSchemaDefaults(t *testing.T) {
	config := "resources:\n- name: r\n  type: py.py\n"
	imports := map[string]any{
		"py.py": map[string]any{
			"path":    "py.py",
			"content": "function GenerateConfig(ctx)\n  return {resources = {}}\nend\n",
		},
		"py.py.schema": "properties:\n  one:\n    default: 1\n  alpha:\n    default: alpha\n",
	}

	out, err := Expand(config, imports, nil, true, false)
	require.NoError(t, err)

	doc := mustParse(t, out)
	layoutResources := doc["layout"].(map[string]any)["resources"].([]any)
	node := layoutResources[0].(map[string]any)
	props := node["properties"].(map[string]any)
	assert.Equal(t, 1, props["one"])
	assert.Equal(t, "alpha", props["alpha"])
}

// Scenario 4: reference resolution.
func TestExpandReferenceResolution(t *testing.T) {
	config := "" +
		"resources:\n" +
		"- name: first\n" +
		"  type: py.py\n" +
		"- name: second\n" +
		"  type: py.py\n" +
		"- name: third\n" +
		"  type: compute.v1.instance\n" +
		"  properties:\n" +
		"    count: $(ref.first.size)\n"
	imports := map[string]any{
		"py.py": map[string]any{
			"path": "py.py",
			"content": "function GenerateConfig(ctx)\n" +
				"  return \"resources: []\\noutputs:\\n- name: size\\n  value: 2\\n\"\n" +
				"end\n",
		},
	}

	out, err := Expand(config, imports, nil, false, true)
	require.NoError(t, err)

	doc := mustParse(t, out)
	cfgResources := doc["config"].(map[string]any)["resources"].([]any)
	require.Len(t, cfgResources, 1)
	third := cfgResources[0].(map[string]any)
	assert.Equal(t, "2", third["properties"].(map[string]any)["count"])
}

// Scenario 5: duplicate-name failure.
func TestExpandDuplicateNameFailure(t *testing.T) {
	config := "" +
		"resources:\n" +
		"- name: my_instance\n" +
		"  type: compute.v1.instance\n" +
		"- name: my_instance\n" +
		"  type: compute.v1.instance\n"

	_, err := Expand(config, nil, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource name 'my_instance' is not unique in config.")
}

// Scenario 6: malformed reference.
func TestExpandMalformedReference(t *testing.T) {
	config := "" +
		"resources:\n" +
		"- name: x\n" +
		"  type: compute.v1.instance\n" +
		"  properties:\n" +
		"    note: almost $(ref.name.path\n"

	_, err := Expand(config, nil, nil, false, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$(ref.name.path")
}

func TestExpandNestedTemplate(t *testing.T) {
	config := "" +
		"resources:\n" +
		"- name: outer\n" +
		"  type: jinja.jinja\n" +
		"  properties:\n" +
		"    size: big\n"
	imports := map[string]any{
		"jinja.jinja": map[string]any{
			"path": "jinja.jinja",
			"content": "resources:\n" +
				"- name: inner\n" +
				"  type: compute.v1.instance\n" +
				"  properties:\n" +
				"    size: {{ properties.size }}\n",
		},
	}

	out, err := Expand(config, imports, nil, false, false)
	require.NoError(t, err)

	doc := mustParse(t, out)
	cfgResources := doc["config"].(map[string]any)["resources"].([]any)
	require.Len(t, cfgResources, 1)
	inner := cfgResources[0].(map[string]any)
	assert.Equal(t, "inner", inner["name"])
	assert.Equal(t, "big", inner["properties"].(map[string]any)["size"])

	layoutResources := doc["layout"].(map[string]any)["resources"].([]any)
	outer := layoutResources[0].(map[string]any)
	assert.Equal(t, "outer", outer["name"])
	assert.Equal(t, "big", outer["properties"].(map[string]any)["size"])
	children := outer["resources"].([]any)
	require.Len(t, children, 1)
	assert.Equal(t, "inner", children[0].(map[string]any)["name"])
}

func TestExpandMissingNameFails(t *testing.T) {
	config := "resources:\n- type: compute.v1.instance\n"
	_, err := Expand(config, nil, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource does not have a name.")
}

func TestExpandMissingTypeFails(t *testing.T) {
	config := "resources:\n- name: x\n"
	_, err := Expand(config, nil, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource does not have type defined.")
}

func TestExpandTemplateNoResourcesFieldFails(t *testing.T) {
	config := "resources:\n- name: r\n  type: py.py\n"
	imports := map[string]any{
		"py.py": map[string]any{
			"path":    "py.py",
			"content": "function GenerateConfig(ctx)\n  return {notresources = true}\nend\n",
		},
	}

	_, err := Expand(config, imports, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template did not return a 'resources:' field.")
	assert.Contains(t, err.Error(), "py.py")
}
