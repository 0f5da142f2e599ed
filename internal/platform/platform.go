package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
)

// Token is a normalized token-exchange result. ExpiresIn is zero when the
// provider did not report a lifetime.
type Token struct {
	AccessToken string
	ExpiresIn   int64
}

type Page struct {
	ID   string
	Name string
	Raw  json.RawMessage
}

type Profile struct {
	ID   string
	Name string
}

type Channel struct {
	ID  string
	Raw json.RawMessage
}

// NormalizedMetrics carries whatever the provider reported. Nil means the
// field was missing or unparseable; an observed zero is a real zero.
type NormalizedMetrics struct {
	Followers   *int64
	Views       *int64
	Impressions *int64
	Reach       *int64
	Raw         json.RawMessage
}

// classifyTransport turns a timed-out round trip into ErrProviderTimeout so
// callers can tell "provider is slow" apart from "provider said no".
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperror.ErrProviderTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", apperror.ErrProviderTimeout, err)
	}
	return err
}

func parseMetricValue(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
