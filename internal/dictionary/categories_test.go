package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_OrderAndCodes(t *testing.T) {
	defs := Categories()
	require.Len(t, defs, 7)
	var labels, codes []string
	for _, d := range defs {
		labels = append(labels, d.Label)
		codes = append(codes, d.Code)
		assert.NotEmpty(t, d.Keywords, d.Label)
	}
	assert.Equal(t, []string{"Food", "Transportation", "Housing", "Health", "Education", "Leisure", "Subscriptions"}, labels)
	assert.Equal(t, "subscriptions", codes[6])
}

func TestCategories_ReturnsCopy(t *testing.T) {
	defs := Categories()
	defs[0].Keywords[0] = "changed"
	assert.Equal(t, "grocery", Categories()[0].Keywords[0])
}

func TestIsCurated(t *testing.T) {
	assert.True(t, IsCurated("Food"))
	assert.False(t, IsCurated("food"))
	assert.False(t, IsCurated(DefaultCategory))
	assert.False(t, IsCurated("Coffee"))
}
