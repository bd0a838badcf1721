package refengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNextSimpleReference(t *testing.T) {
	match, ok, err := FindNext("count: $(ref.first.size)", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", match.Name)
	assert.Equal(t, "size", match.Path)
}

func TestFindNextPathWithBalancedParens(t *testing.T) {
	s := "$(ref.other.filter(@.size>1))"
	match, ok, err := FindNext(s, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "other", match.Name)
	assert.Equal(t, "filter(@.size>1)", match.Path)
	assert.Equal(t, len(s), match.End)
}

func TestFindNextNoReference(t *testing.T) {
	_, ok, err := FindNext("plain string", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindNextMalformedUnbalanced(t *testing.T) {
	_, _, err := FindNext("almost $(ref.name.path", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$(ref.name.path")
}

func TestFindNextMultipleMatches(t *testing.T) {
	s := "$(ref.a.x) and $(ref.b.y)"
	first, ok, err := FindNext(s, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", first.Name)

	second, ok, err := FindNext(s, first.End)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", second.Name)
}
