package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrRetriesExceeded = errors.New("max retries exceeded")
)

// UpstreamError is a non-2xx response from an upstream API. It carries the
// HTTP status so callers can distinguish rate limits and missing resources
// from hard failures.
type UpstreamError struct {
	Source     Source
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Source, e.StatusCode, e.Status)
}

// Is lets errors.Is match ErrRateLimited and ErrNotFound against the
// corresponding status codes.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}
