package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/aster/pkg/models"
)

func testTree() Tree {
	return Tree{
		"personal": map[string]any{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john@example.com",
		},
		"work": map[string]any{
			"skills": []any{"Go", "SQL"},
		},
		"education": map[string]any{
			"gpa": "",
		},
	}
}

func TestTreeResolve(t *testing.T) {
	tree := testTree()

	t.Run("ScalarLeaf", func(t *testing.T) {
		value, ok := tree.Resolve(models.PathFirstName)
		require.True(t, ok)
		assert.Equal(t, KindScalar, value.Kind())
		assert.Equal(t, "John", value.Display())
		assert.False(t, value.IsEmpty())
	})

	t.Run("ListLeafCommaJoined", func(t *testing.T) {
		value, ok := tree.Resolve(models.PathSkills)
		require.True(t, ok)
		assert.Equal(t, KindList, value.Kind())
		assert.Equal(t, "Go, SQL", value.Display())
	})

	t.Run("EmptyScalarResolvesButIsEmpty", func(t *testing.T) {
		value, ok := tree.Resolve(models.PathGPA)
		require.True(t, ok)
		assert.True(t, value.IsEmpty())
	})

	t.Run("MissingSegment", func(t *testing.T) {
		_, ok := tree.Resolve(models.PathLinkedIn)
		assert.False(t, ok)
	})

	t.Run("NonObjectIntermediate", func(t *testing.T) {
		_, ok := Tree{"personal": "oops"}.Resolve(models.PathFirstName)
		assert.False(t, ok)
	})

	t.Run("UntypedLeaf", func(t *testing.T) {
		tree := Tree{"education": map[string]any{"gpa": 3.8}}
		_, ok := tree.Resolve(models.PathGPA)
		assert.False(t, ok)
	})

	t.Run("ListWithNonStringElement", func(t *testing.T) {
		tree := Tree{"work": map[string]any{"skills": []any{"Go", 42}}}
		_, ok := tree.Resolve(models.PathSkills)
		assert.False(t, ok)
	})

	t.Run("NilTree", func(t *testing.T) {
		var tree Tree
		_, ok := tree.Resolve(models.PathFirstName)
		assert.False(t, ok)
	})
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "", Value{}.Display())
	assert.Equal(t, "solo", NewScalar("solo").Display())
	assert.Equal(t, "a, b, c", NewList([]string{"a", "b", "c"}).Display())
	assert.True(t, Value{}.IsEmpty())
	assert.True(t, NewList(nil).IsEmpty())
}
