package render

import (
	"testing"

	"github.com/newstack-cloud/tmplexpand/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScriptReturningStringYAML(t *testing.T) {
	source := `
function GenerateConfig(ctx)
  return "resources:\n- name: myBackend\n  type: compute.v1.instance\n  properties:\n    machineSize: " .. ctx.properties.size .. "\n"
end
`
	ctx := Context{Properties: map[string]any{"size": "big"}}
	loader := sandbox.NewLoader()

	doc, err := renderScript("t.py", source, ctx, loader)
	require.NoError(t, err)

	resources, ok := doc["resources"].([]any)
	require.True(t, ok)
	require.Len(t, resources, 1)
}

func TestRenderScriptReturningTable(t *testing.T) {
	source := `
function GenerateConfig(ctx)
  return {resources = {{name = "x", type = "compute.v1.instance"}}}
end
`
	loader := sandbox.NewLoader()
	doc, err := renderScript("t.py", source, Context{}, loader)
	require.NoError(t, err)

	resources, ok := doc["resources"].([]any)
	require.True(t, ok)
	require.Len(t, resources, 1)
}

func TestRenderScriptRequiresSandboxedModule(t *testing.T) {
	loader := sandbox.NewLoader()
	require.NoError(t, loader.Install(map[string]sandbox.Entry{
		"common": {Path: "helpers/common.py", Content: `return {greeting = "hi"}`},
	}))

	source := `
local common = require("helpers.common")
function GenerateConfig(ctx)
  return "resources:\n- name: " .. common.greeting .. "\n  type: x\n"
end
`
	doc, err := renderScript("t.py", source, Context{}, loader)
	require.NoError(t, err)
	resources, ok := doc["resources"].([]any)
	require.True(t, ok)
	require.Len(t, resources, 1)
}

func TestRenderScriptMissingEntrypointFails(t *testing.T) {
	loader := sandbox.NewLoader()
	_, err := renderScript("t.py", "x = 1", Context{}, loader)
	assert.Error(t, err)
}

func TestRenderScriptNoResourcesKeyFails(t *testing.T) {
	loader := sandbox.NewLoader()
	source := `function GenerateConfig(ctx) return {other = true} end`
	_, err := renderScript("t.py", source, Context{}, loader)
	assert.Error(t, err)
}
