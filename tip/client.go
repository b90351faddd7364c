// Package tip fetches short hydration tips from a text-generation endpoint
package tip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrMalformedResponse is returned when a 2xx body lacks the expected candidate text
var ErrMalformedResponse = errors.New("malformed tip response")

// maxErrorBody caps how much of a failed response body ends up in an error
const maxErrorBody = 512

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig configures the HTTP generator
type ClientConfig struct {
	BaseURL string // e.g. https://generativelanguage.googleapis.com/v1beta
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client calls a generateContent-style endpoint
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

// NewClient builds a client; the request URL is {BaseURL}/models/{Model}:generateContent
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		url:    fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(cfg.BaseURL, "/"), cfg.Model),
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the first candidate's text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal tip request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create tip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call tip endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read tip response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", fmt.Errorf("tip endpoint error %d: %s", resp.StatusCode, string(body))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidate text", ErrMalformedResponse)
	}
	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrMalformedResponse)
	}
	return text, nil
}
