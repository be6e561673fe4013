package httpx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

// fakeDoer scripts one response per attempt.
type fakeDoer struct {
	calls     int
	responses []fakeResponse
}

type fakeResponse struct {
	status int
	body   string
	err    error
}

func (f *fakeDoer) DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	r := f.responses[i]
	if r.err != nil {
		return r.err
	}
	resp.SetStatusCode(r.status)
	resp.SetBodyString(r.body)
	return nil
}

func newTestClient(d *fakeDoer, p Policy, status StatusFunc) *Client {
	return &Client{
		http:   d,
		policy: p,
		status: status,
		sleep:  func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	d := &fakeDoer{responses: []fakeResponse{{status: 200, body: `{"ok":true}`}}}
	var statuses []string
	c := newTestClient(d, Policy{MaxRetries: 2}, func(s string) { statuses = append(statuses, s) })

	body, err := c.Do(context.Background(), Request{URL: "http://x", Label: "probe", Timeout: time.Second})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("body = %s", body)
	}
	if d.calls != 1 {
		t.Fatalf("calls = %d; want 1", d.calls)
	}
	if len(statuses) != 1 || statuses[0] != "" {
		t.Fatalf("statuses = %v; want single clear", statuses)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	d := &fakeDoer{responses: []fakeResponse{
		{err: errors.New("connection reset")},
		{status: 503, body: "unavailable"},
		{status: 200, body: "fine"},
	}}
	var statuses []string
	c := newTestClient(d, Policy{MaxRetries: 2}, func(s string) { statuses = append(statuses, s) })

	body, err := c.Do(context.Background(), Request{URL: "http://x", Label: "fighter search", Timeout: time.Second})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(body) != "fine" {
		t.Fatalf("body = %s", body)
	}
	if d.calls != 3 {
		t.Fatalf("calls = %d; want 3", d.calls)
	}

	want := []string{
		"Retrying fighter search… (attempt 2/3)",
		"Retrying fighter search… (attempt 3/3)",
		"",
	}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v; want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("status[%d] = %q; want %q", i, statuses[i], want[i])
		}
	}
}

func TestDo_ExhaustedReturnsLastError(t *testing.T) {
	d := &fakeDoer{responses: []fakeResponse{{status: 500, body: "boom"}}}
	c := newTestClient(d, Policy{MaxRetries: 1}, nil)

	_, err := c.Do(context.Background(), Request{URL: "http://x", Label: "probe", Timeout: time.Second})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T; want *StatusError", err)
	}
	if se.Code != 500 || se.Body != "boom" {
		t.Fatalf("StatusError = %+v", se)
	}
	if d.calls != 2 {
		t.Fatalf("calls = %d; want 2", d.calls)
	}
}

func TestDo_NonRetryWithZeroRetries(t *testing.T) {
	d := &fakeDoer{responses: []fakeResponse{{status: 404, body: "not found"}}}
	c := newTestClient(d, Policy{}, nil)

	_, err := c.Do(context.Background(), Request{URL: "http://x", Timeout: time.Second})
	if err == nil || d.calls != 1 {
		t.Fatalf("err=%v calls=%d; want single failing attempt", err, d.calls)
	}
}

func TestDo_CanceledContextStopsRetries(t *testing.T) {
	d := &fakeDoer{responses: []fakeResponse{{err: errors.New("down")}}}
	c := newTestClient(d, Policy{MaxRetries: 5, Backoff: ExponentialBackoff(time.Millisecond)}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, Request{URL: "http://x", Timeout: time.Second})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
	if d.calls != 0 {
		t.Fatalf("calls = %d; canceled context must not dial", d.calls)
	}
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(500 * time.Millisecond)
	want := []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}
	for i, w := range want {
		if got := b(i + 1); got != w {
			t.Fatalf("backoff(%d) = %v; want %v", i+1, got, w)
		}
	}
}

func TestStatusError_Message(t *testing.T) {
	e := &StatusError{Code: 502, Body: "bad gateway"}
	if e.Error() != "upstream status 502: bad gateway" {
		t.Fatalf("Error() = %q", e.Error())
	}
}
