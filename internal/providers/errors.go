package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure classes for provider calls. Wrap with fmt.Errorf("%w: ...") and
// match with errors.Is.
var (
	// ErrTimeout means the call did not complete within the allotted time.
	ErrTimeout = errors.New("provider timeout")
	// ErrProvider covers every other provider failure: transport errors,
	// auth failures, missing credentials, unsupported provider names, and
	// malformed API responses.
	ErrProvider = errors.New("provider error")
)

// transportError classifies an http.Client error. Context cancellation is
// treated the same as deadline expiry: either way the caller stopped waiting.
func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: sending request: %v", ErrProvider, err)
}

// statusError maps a non-200 API status to ErrProvider.
func statusError(status int, body []byte) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%w: authentication failed (status %d): %s", ErrProvider, status, body)
	case status == 429:
		return fmt.Errorf("%w: rate limited: %s", ErrProvider, body)
	default:
		return fmt.Errorf("%w: API error (status %d): %s", ErrProvider, status, body)
	}
}
