package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryFilter(t *testing.T) {
	for _, in := range []string{"", " ", "All", "all", "ALL"} {
		tag, err := ParseCategoryFilter(in)
		require.NoError(t, err, in)
		assert.Empty(t, tag, in)
	}

	tag, err := ParseCategoryFilter(" Travel ")
	require.NoError(t, err)
	assert.Equal(t, "travel", tag)

	_, err = ParseCategoryFilter("gardening")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryLabels(t *testing.T) {
	labels := CategoryLabels()
	require.Len(t, labels, len(Categories)+1)
	assert.Equal(t, AllCategories, labels[0])
	assert.Equal(t, "Technology", labels[1])
	assert.Equal(t, "Art", labels[len(labels)-1])
}

func TestViewer(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.True(t, Viewer{UserID: "u1"}.Authenticated())
}
