// Package groq implements the client for the hosted LLM completion API.
// It drives four flows: AI fighter search, profile synthesis, tactical
// analysis, and contextual Q&A. Two models are in play — a fast one for
// search and profile synthesis, a fuller one for analysis and questions.
//
// The LLM is asked for JSON but is not trusted to produce it: every parse
// path degrades to treating the raw text as the answer rather than failing.
package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TheGrowthIntern/boxing-analyst/internal/config"
	"github.com/TheGrowthIntern/boxing-analyst/internal/httpx"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("groq: api key not configured")

// ErrNoContent is returned when the completion carried no usable content.
var ErrNoContent = errors.New("groq: completion returned no content")

// Caller is the outbound request contract consumed by this client.
type Caller interface {
	Do(ctx context.Context, r httpx.Request) ([]byte, error)
}

// Client talks to the chat-completions endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	fastModel string

	searchTimeout  time.Duration
	profileTimeout time.Duration
	answerTimeout  time.Duration

	http Caller
}

// NewClient builds a Client from configuration and a shared request client.
func NewClient(cfg config.GroqConfig, hc Caller) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		fastModel:      cfg.FastModel,
		searchTimeout:  cfg.SearchTimeout,
		profileTimeout: cfg.ProfileTimeout,
		answerTimeout:  cfg.AnswerTimeout,
		http:           hc,
	}
}

// chatMessage is one turn in a completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat asks the endpoint for a JSON object body.
type responseFormat struct {
	Type string `json:"type"`
}

// chatRequest is the completion request payload.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// completionOpts tunes one completion call.
type completionOpts struct {
	model       string
	system      string
	user        string
	temperature float64
	maxTokens   int
	jsonObject  bool
	timeout     time.Duration
	label       string
}

// complete performs one chat completion and returns the raw content string.
func (c *Client) complete(ctx context.Context, o completionOpts) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	req := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: o.system},
			{Role: "user", Content: o.user},
		},
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	if o.jsonObject {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	body, err := c.http.Do(ctx, httpx.Request{
		Method: "POST",
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body:    payload,
		Timeout: o.timeout,
		Label:   o.label,
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}
	return resp.Choices[0].Message.Content, nil
}
