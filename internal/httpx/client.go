// Package httpx implements the outbound request client shared by the
// fighter-data and LLM API clients. It performs one logical call as a
// sequence of bounded attempts: each attempt runs under its own deadline,
// failures (network errors, timeouts, non-2xx statuses) are retried with
// exponential backoff, and a transient status line is published so the UI
// can show retry progress.
package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// Policy bounds the retry behavior of a call. It is a plain value so callers
// can tune attempts and backoff per endpoint and tests can drop the delays
// entirely.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero means a single attempt.
	MaxRetries int
	// Backoff returns the delay before retry n (1-based). Nil means no delay.
	Backoff func(retry int) time.Duration
}

// ExponentialBackoff returns a backoff function starting at base and
// doubling per retry: base, 2*base, 4*base, …
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(retry int) time.Duration {
		return base << uint(retry-1)
	}
}

// StatusFunc receives transient, user-visible status updates during a call.
// It is called with "Retrying <label>… (attempt n/m)" between attempts and
// with the empty string once an attempt succeeds.
type StatusFunc func(msg string)

// Request describes one outbound HTTP call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	// Timeout is the per-attempt deadline. An attempt that exceeds it is
	// aborted and treated like any other retryable failure.
	Timeout time.Duration
	// Label names the call in status messages and logs, e.g. "fighter search".
	Label string
}

// StatusError is returned for non-2xx responses. Body carries the upstream
// response text so callers can surface or log it.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// doer is the subset of fasthttp.Client used by this package.
type doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Client executes requests with retry. Safe for concurrent use.
type Client struct {
	http   doer
	policy Policy
	status StatusFunc

	// sleep is a seam for tests; defaults to a context-aware timer wait.
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds a Client around a shared fasthttp transport.
func New(policy Policy, status StatusFunc) *Client {
	return &Client{
		http: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			MaxIdleConnDuration: time.Minute,
		},
		policy: policy,
		status: status,
		sleep:  sleepCtx,
	}
}

// Do performs the request, retrying per the client's policy, and returns the
// body of a 2xx response. The final attempt's error propagates unchanged.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	attempts := c.policy.MaxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.once(ctx, r)
		if err == nil {
			c.setStatus("")
			return body, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		log.Warn().
			Str("label", r.Label).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Err(err).
			Msg("upstream call failed, retrying")
		c.setStatus(fmt.Sprintf("Retrying %s… (attempt %d/%d)", r.Label, attempt+1, attempts))

		if c.policy.Backoff != nil {
			if err := c.sleep(ctx, c.policy.Backoff(attempt)); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// once runs a single attempt under the per-attempt deadline.
func (c *Client) once(ctx context.Context, r Request) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.URL)
	method := r.Method
	if method == "" {
		method = fasthttp.MethodGet
	}
	req.Header.SetMethod(method)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if len(r.Body) > 0 {
		req.SetBody(r.Body)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	code := resp.StatusCode()
	if code < 200 || code >= 300 {
		return nil, &StatusError{Code: code, Body: string(resp.Body())}
	}

	// Copy out: the response buffer is recycled on release.
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

func (c *Client) setStatus(msg string) {
	if c.status != nil {
		c.status(msg)
	}
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
