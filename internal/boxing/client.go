// Package boxing implements the client for the fighter-data REST API.
// The upstream is loose about response envelopes — a collection may arrive
// as a bare array, wrapped under "fighters"/"fights", or under "data" — so
// decoding is deliberately tolerant.
package boxing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/TheGrowthIntern/boxing-analyst/internal/config"
	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/httpx"
	"github.com/rs/zerolog/log"
)

// Caller is the outbound request contract consumed by this client.
// *httpx.Client satisfies it; tests substitute a stub.
type Caller interface {
	Do(ctx context.Context, r httpx.Request) ([]byte, error)
}

// Client talks to the fighter-data REST API. All calls authenticate with the
// static RapidAPI key/host header pair.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	timeout time.Duration
	http    Caller
}

// NewClient builds a Client from configuration and a shared request client.
func NewClient(cfg config.BoxingConfig, hc Caller) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		timeout: cfg.Timeout,
		http:    hc,
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  c.apiKey,
		"X-RapidAPI-Host": c.apiHost,
	}
}

// SearchFighters looks up fighters by name. An empty name short-circuits to
// an empty result without a network call.
func (c *Client) SearchFighters(ctx context.Context, name string) ([]domain.Fighter, error) {
	if name == "" {
		return nil, nil
	}
	body, err := c.http.Do(ctx, httpx.Request{
		URL:     fmt.Sprintf("%s/fighters/?name=%s", c.baseURL, url.QueryEscape(name)),
		Headers: c.headers(),
		Timeout: c.timeout,
		Label:   "fighter search",
	})
	if err != nil {
		return nil, err
	}

	fighters, err := decodeFighterList(body)
	if err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	for i := range fighters {
		normalizeFighter(&fighters[i])
	}
	return fighters, nil
}

// GetFighter fetches a single fighter by upstream id.
func (c *Client) GetFighter(ctx context.Context, id string) (*domain.Fighter, error) {
	body, err := c.http.Do(ctx, httpx.Request{
		URL:     fmt.Sprintf("%s/fighters/%s/", c.baseURL, url.PathEscape(id)),
		Headers: c.headers(),
		Timeout: c.timeout,
		Label:   "fighter profile",
	})
	if err != nil {
		return nil, err
	}

	var f domain.Fighter
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("decode fighter response: %w", err)
	}
	normalizeFighter(&f)
	return &f, nil
}

// RecentFights returns the fighter's bouts ordered newest-first. Fights with
// missing or unparseable dates sort last.
func (c *Client) RecentFights(ctx context.Context, fighterID string) ([]domain.Fight, error) {
	body, err := c.http.Do(ctx, httpx.Request{
		URL:     fmt.Sprintf("%s/fights/?fighter_id=%s", c.baseURL, url.QueryEscape(fighterID)),
		Headers: c.headers(),
		Timeout: c.timeout,
		Label:   "fight history",
	})
	if err != nil {
		return nil, err
	}

	fights, err := decodeFightList(body)
	if err != nil {
		return nil, fmt.Errorf("decode fights response: %w", err)
	}
	domain.SortFightsByDateDesc(fights)
	return fights, nil
}

// normalizeFighter applies the domain invariants to a freshly decoded record.
// A record string disagreeing with the numeric fields is recomputed (numbers
// win) and logged, never surfaced.
func normalizeFighter(f *domain.Fighter) {
	if domain.ReconcileRecord(f) {
		log.Warn().
			Str("fighter", f.Name).
			Str("record", f.Record).
			Msg("record string disagreed with numeric fields, recomputed")
	}
	domain.DeriveAge(f, time.Now())
}

// decodeFighterList accepts a bare array, {"fighters":[…]}, {"data":[…]},
// or a single fighter object.
func decodeFighterList(body []byte) ([]domain.Fighter, error) {
	var arr []domain.Fighter
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}

	var wrapped struct {
		Fighters []domain.Fighter `json:"fighters"`
		Data     []domain.Fighter `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if len(wrapped.Fighters) > 0 {
			return wrapped.Fighters, nil
		}
		if len(wrapped.Data) > 0 {
			return wrapped.Data, nil
		}
	}

	// A direct single-fighter object is rare for search but possible.
	var one domain.Fighter
	if err := json.Unmarshal(body, &one); err == nil && one.ID != "" && one.Name != "" {
		return []domain.Fighter{one}, nil
	}

	return nil, nil
}

// decodeFightList accepts a bare array, {"fights":[…]}, or {"data":[…]}.
func decodeFightList(body []byte) ([]domain.Fight, error) {
	var arr []domain.Fight
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}

	var wrapped struct {
		Fights []domain.Fight `json:"fights"`
		Data   []domain.Fight `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Fights) > 0 {
		return wrapped.Fights, nil
	}
	return wrapped.Data, nil
}
