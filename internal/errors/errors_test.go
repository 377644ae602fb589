package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  Error
		want string
	}{
		{"message wins", New(CodeNotFound, "collector 7 not found", errors.New("sql: no rows")), "collector 7 not found"},
		{"wrapped error", New(CodeStorageFailed, "", errors.New("disk full")), "disk full"},
		{"code only", New(CodeSubmitInFlight, "", nil), "submit_in_flight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCodeOfWalksChain(t *testing.T) {
	base := New(CodeValidationFailed, "name is required", nil)
	wrapped := fmt.Errorf("submit: %w", base)

	assert.Equal(t, CodeValidationFailed, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeValidationFailed))
	assert.False(t, IsCode(wrapped, CodeNotFound))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
}

func TestIsMatchesSameCode(t *testing.T) {
	sentinel := New(CodeServiceTagMissing, "no service tag", nil)
	err := fmt.Errorf("prefill: %w", New(CodeServiceTagMissing, "no service= token in \"env=prod\"", nil))

	require.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, New(CodeNotFound, "", nil))
	assert.NotErrorIs(t, New(CodeUnknown, "a", nil), New(CodeUnknown, "b", nil))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := New(CodeStorageFailed, "save collector", cause)

	assert.ErrorIs(t, err, cause)
}
