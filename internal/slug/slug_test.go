package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Food":                  "food",
		"Alimentação":           "alimentacao",
		"Saúde & Bem-estar":     "saude_bem_estar",
		"  Health insurance  ":  "health_insurance",
		"__x__":                 "x",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("subscriptions"))
	assert.False(t, IsSlug("x"))
	assert.False(t, IsSlug("Food"))
}
