package boxing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheGrowthIntern/boxing-analyst/internal/config"
	"github.com/TheGrowthIntern/boxing-analyst/internal/httpx"
)

// fakeCaller captures the outbound request and returns a scripted body.
type fakeCaller struct {
	lastReq httpx.Request
	body    []byte
	err     error
}

func (f *fakeCaller) Do(ctx context.Context, r httpx.Request) ([]byte, error) {
	f.lastReq = r
	return f.body, f.err
}

func testClient(body string, err error) (*Client, *fakeCaller) {
	fc := &fakeCaller{body: []byte(body), err: err}
	c := NewClient(config.BoxingConfig{
		BaseURL: "https://boxing.example/v1",
		APIKey:  "k",
		APIHost: "boxing.example",
		Timeout: 5 * time.Second,
	}, fc)
	return c, fc
}

func TestSearchFighters_EmptyNameShortCircuits(t *testing.T) {
	c, fc := testClient("[]", nil)
	got, err := c.SearchFighters(context.Background(), "")
	if err != nil || got != nil {
		t.Fatalf("got (%v, %v); want nil, nil", got, err)
	}
	if fc.lastReq.URL != "" {
		t.Fatalf("no network call expected, got %q", fc.lastReq.URL)
	}
}

func TestSearchFighters_RequestShape(t *testing.T) {
	c, fc := testClient(`[]`, nil)
	if _, err := c.SearchFighters(context.Background(), "Floyd Mayweather"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if want := "https://boxing.example/v1/fighters/?name=Floyd+Mayweather"; fc.lastReq.URL != want {
		t.Fatalf("URL = %q; want %q", fc.lastReq.URL, want)
	}
	if fc.lastReq.Headers["X-RapidAPI-Key"] != "k" || fc.lastReq.Headers["X-RapidAPI-Host"] != "boxing.example" {
		t.Fatalf("headers = %v", fc.lastReq.Headers)
	}
}

func TestSearchFighters_EnvelopeVariants(t *testing.T) {
	cases := map[string]string{
		"bare array":    `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`,
		"fighters wrap": `{"fighters":[{"id":"1","name":"A"},{"id":"2","name":"B"}]}`,
		"data wrap":     `{"data":[{"id":"1","name":"A"},{"id":"2","name":"B"}]}`,
	}
	for name, body := range cases {
		c, _ := testClient(body, nil)
		got, err := c.SearchFighters(context.Background(), "a")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != 2 || got[0].Name != "A" {
			t.Fatalf("%s: got %+v", name, got)
		}
	}
}

func TestSearchFighters_SingleObject(t *testing.T) {
	c, _ := testClient(`{"id":"9","name":"Solo"}`, nil)
	got, err := c.SearchFighters(context.Background(), "solo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Solo" {
		t.Fatalf("got %+v", got)
	}
}

func TestSearchFighters_ReconcilesRecord(t *testing.T) {
	c, _ := testClient(`[{"id":"1","name":"A","record":"49-0","wins":50,"losses":0}]`, nil)
	got, err := c.SearchFighters(context.Background(), "a")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got[0].Record != "50-0" {
		t.Fatalf("Record = %q; numeric fields must win", got[0].Record)
	}
}

func TestGetFighter_NumericID(t *testing.T) {
	c, fc := testClient(`{"id": 7, "name":"Seven","height":"5'8\""}`, nil)
	f, err := c.GetFighter(context.Background(), "7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if want := "https://boxing.example/v1/fighters/7/"; fc.lastReq.URL != want {
		t.Fatalf("URL = %q; want %q", fc.lastReq.URL, want)
	}
	if f.ID != "7" || f.Name != "Seven" {
		t.Fatalf("fighter = %+v", f)
	}
}

func TestGetFighter_UpstreamError(t *testing.T) {
	wantErr := &httpx.StatusError{Code: 404, Body: "not found"}
	c, _ := testClient("", wantErr)
	if _, err := c.GetFighter(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v; want passthrough", err)
	}
}

func TestRecentFights_SortedNewestFirst(t *testing.T) {
	body := `{"fights":[
		{"id":"old","date":"2018-03-03","opponent":"A","result":"win"},
		{"id":"new","date":"2024-05-18","opponent":"B","result":"loss"},
		{"id":"nodate","opponent":"C"}
	]}`
	c, fc := testClient(body, nil)
	fights, err := c.RecentFights(context.Background(), "7")
	if err != nil {
		t.Fatalf("fights: %v", err)
	}
	if want := "https://boxing.example/v1/fights/?fighter_id=7"; fc.lastReq.URL != want {
		t.Fatalf("URL = %q; want %q", fc.lastReq.URL, want)
	}
	if len(fights) != 3 || fights[0].ID != "new" || fights[2].ID != "nodate" {
		t.Fatalf("order = %+v", fights)
	}
	if fights[0].Opponent.Name != "B" {
		t.Fatalf("opponent = %+v", fights[0].Opponent)
	}
}
