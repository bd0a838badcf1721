package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepCopyMutatesIndependently(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"size": "big"},
		"items":  []any{"a", "b"},
	}

	clone, ok := AsMap(DeepCopy(original))
	assert.True(t, ok)

	nested, ok := AsMap(clone["nested"])
	assert.True(t, ok)
	nested["size"] = "small"

	originalNested, _ := AsMap(original["nested"])
	assert.Equal(t, "big", originalNested["size"])
}

func TestAsStringAndAsSlice(t *testing.T) {
	_, ok := AsString(42)
	assert.False(t, ok)

	s, ok := AsString("hello")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = AsSlice(map[string]any{})
	assert.False(t, ok)

	items, ok := AsSlice([]any{1, 2})
	assert.True(t, ok)
	assert.Len(t, items, 2)
}
