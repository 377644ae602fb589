package collect

import (
	"testing"

	appErrors "moncollect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractService(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want string
	}{
		{"service first", "service=web,env=prod", "web"},
		{"service later", "env=prod,service=web", "web"},
		{"first service wins", "service=api,service=web", "api"},
		{"single token", "service=svc1", "svc1"},
		{"empty value", "service=", ""},
		{"value keeps equals", "service=a=b", "a=b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractService(tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractServiceMissing(t *testing.T) {
	for _, tags := range []string{"", "env=prod", "services=web", " service=web", "env=prod,,"} {
		t.Run(tags, func(t *testing.T) {
			got, err := ExtractService(tags)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrServiceTagMissing)
			assert.True(t, appErrors.IsCode(err, appErrors.CodeServiceTagMissing))
			assert.Equal(t, "", got)
		})
	}
}

func TestServiceOrEmpty(t *testing.T) {
	assert.Equal(t, "web", ServiceOrEmpty("env=prod,service=web"))
	assert.Equal(t, "", ServiceOrEmpty("env=prod"))
	assert.Equal(t, "", ServiceOrEmpty(""))
}

func TestServiceTag(t *testing.T) {
	assert.Equal(t, "service=svc1", ServiceTag("svc1"))
}

func TestParseTags(t *testing.T) {
	got := ParseTags("service=web, env=prod,,flag,k=v=w")
	assert.Equal(t, []Tag{
		{Key: "service", Value: "web"},
		{Key: "env", Value: "prod"},
		{Key: "flag", Value: ""},
		{Key: "k", Value: "v=w"},
	}, got)
	assert.Empty(t, ParseTags(""))
}
