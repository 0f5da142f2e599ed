package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("social account", 7)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "social account 7: not found", err.Error())
}

func TestStorage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Status: 400, Body: `{"error":"invalid_grant"}`}
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid_grant")

	var pe *ProviderError
	assert.True(t, errors.As(error(err), &pe))
}
