package refengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathLeafScalar(t *testing.T) {
	root := map[string]any{"size": "big"}
	value, err := ResolvePath("r", "size", root)
	require.NoError(t, err)
	assert.Equal(t, "big", value)
}

func TestResolvePathWildcardReturnsList(t *testing.T) {
	root := map[string]any{
		"a": []any{
			map[string]any{"x": 1},
			map[string]any{"x": 2},
		},
	}

	value, err := ResolvePath("r", "a[*].x", root)
	require.NoError(t, err)
	list, ok := value.([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestResolvePathNoMatchRaises(t *testing.T) {
	root := map[string]any{"size": "big"}
	_, err := ResolvePath("r", "missing", root)
	require.Error(t, err)
}

func TestResolvePathNonRaisingReturnsFalseOnNoMatch(t *testing.T) {
	root := map[string]any{"size": "big"}
	_, ok := ResolvePathNonRaising("missing", root)
	assert.False(t, ok)
}

func TestBuildOutputMapSkipsEmptyOutputs(t *testing.T) {
	nodes := []NamedOutputs{
		{Name: "a", Outputs: []Output{{Name: "size", Value: int64(1)}}},
		{Name: "b"},
	}

	outputMap := BuildOutputMap(nodes)
	assert.Contains(t, outputMap, "a")
	assert.NotContains(t, outputMap, "b")
}
