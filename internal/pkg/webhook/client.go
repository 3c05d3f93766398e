package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Payload is the document POSTed to the marketing webhook
// (Ontraport/Zapier style). Field names are snake_case by contract
// with the receiving automation.
type Payload struct {
	FirstName             string             `json:"first_name"`
	LastName              string             `json:"last_name"`
	Email                 string             `json:"email"`
	FrameworkScores       []int              `json:"framework_scores"`
	FrameworkDescriptions []CategoryResult   `json:"framework_descriptions"`
	TotalScore            int                `json:"total_score"`
	ROIInputs             map[string]float64 `json:"roi_inputs"`
	ROIOutputs            json.RawMessage    `json:"roi_outputs"`
	Timestamp             string             `json:"timestamp"`
}

type CategoryResult struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds a webhook sender. An empty URL produces a client
// whose Send is a no-op, not an error.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Configured() bool {
	return c.url != ""
}

// Send POSTs the payload. The caller treats any error as non-fatal;
// no response body is inspected beyond the status code.
func (c *Client) Send(ctx context.Context, payload Payload) error {
	if c.url == "" {
		return nil
	}

	if payload.Timestamp == "" {
		payload.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}
	return nil
}
