package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("complaint")
	require.NoError(t, err)
	assert.Equal(t, CategoryComplaint, c)
	assert.True(t, c.IsComplaint())

	c, err = NewCategory("suggestion")
	require.NoError(t, err)
	assert.Equal(t, CategorySuggestion, c)
	assert.True(t, c.IsSuggestion())

	for _, invalid := range []string{"", "Complaint", "COMPLAINT", "petition"} {
		_, err := NewCategory(invalid)
		assert.Error(t, err, "category %q should be rejected", invalid)
	}
}

func TestCategory_NumberPrefix(t *testing.T) {
	assert.Equal(t, "CMP", CategoryComplaint.NumberPrefix())
	assert.Equal(t, "SGT", CategorySuggestion.NumberPrefix())
}
