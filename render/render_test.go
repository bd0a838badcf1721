package render

import (
	"testing"

	"github.com/newstack-cloud/tmplexpand/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRenderDispatchesOnSuffix(t *testing.T) {
	engine := &Engine{Sandbox: sandbox.NewLoader()}

	doc, err := engine.Render("t.jinja", "resources: []\n", Context{})
	require.NoError(t, err)
	assert.Contains(t, doc, "resources")

	doc, err = engine.Render("t.py", "function GenerateConfig(ctx) return {resources = {}} end", Context{})
	require.NoError(t, err)
	assert.Contains(t, doc, "resources")
}

func TestEngineRenderUnknownSuffixFails(t *testing.T) {
	engine := &Engine{Sandbox: sandbox.NewLoader()}
	_, err := engine.Render("t.txt", "whatever", Context{})
	assert.Error(t, err)
}
