package godbc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_message(t *testing.T) {
	err := NewError(ErrParameterCount, "statement has %d placeholders but %d values were supplied", 2, 1)
	assert.Equal(t, "parameter count mismatch: statement has 2 placeholders but 1 values were supplied", err.Error())
}

func TestError_wrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrConnection, cause, "connect to postgres")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "connect to postgres")
}

func TestIsKind(t *testing.T) {
	err := NewError(ErrTokenize, "unterminated string literal at 0:7")

	assert.True(t, IsKind(err, ErrTokenize))
	assert.False(t, IsKind(err, ErrBackend))
	assert.False(t, IsKind(errors.New("plain"), ErrTokenize))
	assert.False(t, IsKind(nil, ErrTokenize))

	// A wrapped contract error is still matchable by kind.
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsKind(wrapped, ErrTokenize))
}
