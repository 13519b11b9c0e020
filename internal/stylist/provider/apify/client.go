package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.apify.com/v2"

// Client is the Apify platform HTTP API client: it starts actor runs,
// polls their status and fetches dataset items.
type Client struct {
	baseURL    string
	token      string
	actorID    string
	httpClient *http.Client
}

// NewClient creates a new Apify client for one actor.
func NewClient(baseURL, token, actorID string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		actorID: actorID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StartRun launches an actor run and returns its initial status.
func (c *Client) StartRun(ctx context.Context, input RunInput) (RunStatus, error) {
	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, c.actorID, c.token)

	body, err := json.Marshal(input)
	if err != nil {
		return RunStatus{}, fmt.Errorf("failed to marshal run input: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return RunStatus{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return RunStatus{}, fmt.Errorf("failed to call apify API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return RunStatus{}, fmt.Errorf("apify API error: %d", resp.StatusCode)
	}

	var envelope runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return RunStatus{}, fmt.Errorf("failed to decode run response: %w", err)
	}
	return envelope.Data, nil
}

// GetRun fetches the current status of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (RunStatus, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RunStatus{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return RunStatus{}, fmt.Errorf("failed to call apify API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RunStatus{}, fmt.Errorf("apify API error: %d", resp.StatusCode)
	}

	var envelope runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return RunStatus{}, fmt.Errorf("failed to decode run response: %w", err)
	}
	return envelope.Data, nil
}

// GetDatasetItems fetches the scraped items of a finished run.
func (c *Client) GetDatasetItems(ctx context.Context, datasetID string) ([]Item, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?clean=1&format=json&token=%s", c.baseURL, datasetID, c.token)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call apify API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apify API error: %d", resp.StatusCode)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}
	return items, nil
}
