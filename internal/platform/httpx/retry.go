package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// StatusError is returned for upstream responses with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// RetryPolicy controls DoWithRetry. The zero value retries 4 times starting
// at 200ms, doubling each attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	// RetryStatus reports whether a status code is transient.
	// Defaults to 429 and 5xx gateway/availability errors.
	RetryStatus func(code int) bool
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 4
	}
	if p.Backoff <= 0 {
		p.Backoff = 200 * time.Millisecond
	}
	if p.RetryStatus == nil {
		p.RetryStatus = DefaultRetryStatus
	}
	return p
}

// DefaultRetryStatus treats rate limiting and transient server errors as retryable.
func DefaultRetryStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// Do sends req and converts responses with status >= 400 into *StatusError.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// DoWithRetry retries transient failures (network errors, retryable status codes)
// using exponential backoff while respecting context cancellation.
// makeReq is called once per attempt so request bodies can be rebuilt.
func DoWithRetry(
	ctx context.Context,
	client *http.Client,
	policy RetryPolicy,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	policy = policy.withDefaults()
	backoff := policy.Backoff

	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := Do(client, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *StatusError
		if errors.As(err, &he) {
			retry = policy.RetryStatus(he.Code)
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == policy.MaxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
