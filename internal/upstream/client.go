package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"rocket-container/internal/platform/metrics"
)

const (
	// maxAttempts is the total number of attempts for a single fetch,
	// including the first one.
	maxAttempts = 10

	// maxBackoff caps the delay between attempts.
	maxBackoff = 1000 * time.Millisecond

	// backoffJitterMillis is the upper bound (exclusive) of the random jitter
	// added to each backoff delay, in milliseconds.
	backoffJitterMillis = 100
)

// Client issues idempotent GET requests against upstream services, classifies
// failures as permanent or transient, and retries transient failures with
// exponential backoff plus jitter.
//
// The underlying http.Client (connection pool, base timeout) is shared
// read-only configuration; Client itself is safe for concurrent use.
type Client struct {
	http    *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewClient returns a Client that uses the given http.Client, Logger, and
// optional Metrics. Metrics may be nil to disable metric recording
// (e.g. in tests).
func NewClient(httpClient *http.Client, log *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{http: httpClient, log: log, metrics: m}
}

// Get issues a GET request against endpoint with optional query values and
// decodes the JSON response body into T.
//
// Outcomes are classified as:
//
//   - 200: success, body decoded into T
//   - 404: permanent, "resource not found"
//   - 500: transient, "internal server error"
//   - any other status, transport error, or decode failure: permanent
//
// Transient failures are retried up to maxAttempts total attempts; the delay
// before attempt i (1-indexed, i >= 2) is min(2^(i-1)ms + jitter, maxBackoff).
// Permanent failures stop immediately. If all attempts are exhausted, the
// final attempt's error is returned as-is.
func Get[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (T, error) {
	var zero T

	for attempt := 1; ; attempt++ {
		if c.metrics != nil {
			c.metrics.IncUpstreamAttempts()
		}

		v, err := getOnce[T](ctx, c, endpoint, query)
		if err == nil {
			if attempt > 1 {
				c.log.Debug("upstream request succeeded after retry",
					slog.String("endpoint", endpoint),
					slog.Int("attempt", attempt))
			}
			return v, nil
		}

		if !IsTransient(err) || attempt == maxAttempts {
			c.log.Error("upstream request failed",
				slog.String("endpoint", endpoint),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return zero, err
		}

		delay := backoffDelay(attempt + 1)
		c.log.Warn("transient upstream failure, retrying",
			slog.String("endpoint", endpoint),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", delay))
		if c.metrics != nil {
			c.metrics.IncUpstreamRetries()
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, NewPermanent("request canceled during backoff", err)
		}
	}
}

// getOnce performs a single GET attempt: build the request, send it, classify
// the status code, and decode the body.
func getOnce[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (T, error) {
	var zero T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, NewPermanent("malformed request", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, NewPermanent("request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return zero, NewPermanent("resource not found", nil)
	case http.StatusInternalServerError:
		return zero, NewTransient("internal server error")
	default:
		return zero, NewPermanent(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return zero, NewPermanent("malformed response body", err)
	}
	return v, nil
}

// backoffDelay returns the delay to wait before the given attempt (1-indexed,
// attempt >= 2): min(2^(attempt-1)ms + random jitter in [0, 100ms), maxBackoff).
func backoffDelay(attempt int) time.Duration {
	exponential := time.Duration(1<<(attempt-1)) * time.Millisecond
	jitter := time.Duration(rand.IntN(backoffJitterMillis)) * time.Millisecond
	return min(exponential+jitter, maxBackoff)
}

// sleep blocks for d or until ctx is done, whichever comes first. It never
// stalls unrelated goroutines; each retrying fetch waits on its own timer.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
