package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankOptions(t *testing.T) {
	options := []string{"prod.web", "prod.db", "staging.web", "Shared.Cache"}

	assert.Equal(t, options, rankOptions(options, ""))
	assert.Equal(t, options, rankOptions(options, "   "))
	assert.Empty(t, rankOptions(options, "xyz"))
	assert.Equal(t, []string{"Shared.Cache"}, rankOptions(options, "CACHE"))

	got := rankOptions(options, "web")
	assert.ElementsMatch(t, []string{"prod.web", "staging.web"}, got)
}
