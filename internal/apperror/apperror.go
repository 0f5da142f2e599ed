package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrProviderTimeout    = errors.New("provider call timed out")
)

// ProviderError is a non-success response (or a success response missing a
// required field) from an external API. Body carries the provider's own
// diagnostic payload verbatim; it never contains tokens.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}

func NotFound(resource string, id int64) error {
	return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
}

func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
