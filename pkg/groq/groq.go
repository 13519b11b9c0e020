package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type groqImpl struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// newGroqImpl creates a new Groq implementation
func newGroqImpl(cfg Config) *groqImpl {
	return &groqImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		httpClient: cfg.HTTPClient,
	}
}

// Generate sends a chat completion request to the Groq API
func (g *groqImpl) Generate(ctx context.Context, req *Request) (*Response, error) {
	wireReq := chatRequest{
		Model:       g.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		wireReq.Messages = append(wireReq.Messages, chatMessage{Role: "system", Content: req.System})
	}
	wireReq.Messages = append(wireReq.Messages, chatMessage{Role: "user", Content: req.User})

	wireResp, err := g.callAPI(ctx, wireReq)
	if err != nil {
		return nil, err
	}

	if len(wireResp.Choices) == 0 {
		return nil, fmt.Errorf("groq: empty choices in response")
	}

	return &Response{
		Text: strings.TrimSpace(wireResp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  wireResp.Usage.PromptTokens,
			OutputTokens: wireResp.Usage.CompletionTokens,
			TotalTokens:  wireResp.Usage.TotalTokens,
		},
	}, nil
}

// Model returns the model being used
func (g *groqImpl) Model() string {
	return g.model
}

// callAPI sends a request to the Groq chat completions endpoint
func (g *groqImpl) callAPI(ctx context.Context, req chatRequest) (*chatResponse, error) {
	url := fmt.Sprintf("%s/chat/completions", g.apiURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("groq: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("groq: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("groq: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("groq: API error %d: %s", resp.StatusCode, string(raw))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("groq: failed to decode response: %w", err)
	}

	return &result, nil
}
