// Package httpx provides a small retrying HTTP GET helper shared by the
// upstream API adapters. The retry policy is a plain value so adapters can
// declare and test their backoff behavior independently of the transport.
package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// RetryPolicy controls how Do retries failed responses. A response is
// retried only when Retryable reports true for its status code; transport
// errors are never retried.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
	Retryable  func(statusCode int) bool
}

// NoRetry performs a single attempt.
var NoRetry = RetryPolicy{}

// RetryOn429 is the rate-limit policy used by the API-Football adapter:
// up to 3 retries with the delay doubling from a 1-second base.
var RetryOn429 = RetryPolicy{
	MaxRetries: 3,
	BaseDelay:  time.Second,
	Multiplier: 2,
	Retryable:  func(statusCode int) bool { return statusCode == http.StatusTooManyRequests },
}

// delay returns the backoff before retry attempt n (0-based).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
	}
	return d
}

// Do executes req via client, retrying per policy. On a retryable status the
// response body is discarded and the request re-sent after the backoff
// delay; once retries are exhausted it fails with domain.ErrRetriesExceeded.
// The caller owns the returned response body.
//
// Requests must have no body (or a rewindable GetBody); the adapters here
// only issue GETs.
func Do(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, fmt.Errorf("http request: %w", err)
		}

		if policy.Retryable == nil || !policy.Retryable(resp.StatusCode) {
			return resp, nil
		}
		resp.Body.Close()

		if attempt >= policy.MaxRetries {
			return nil, fmt.Errorf("%w after %d attempts: status %d",
				domain.ErrRetriesExceeded, attempt+1, resp.StatusCode)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry wait: %w", ctx.Err())
		case <-time.After(policy.delay(attempt)):
		}
	}
}
