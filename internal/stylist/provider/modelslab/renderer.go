package modelslab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	pkgLog "ai-outfit-assistant/pkg/log"
	"ai-outfit-assistant/pkg/resilience"
)

const (
	DefaultModelID     = "seedream-4.0-i2i"
	DefaultAspectRatio = "1:1"
	DefaultAPIURL      = "https://modelslab.com/api/v7/images/image-to-image"
)

// HTTPError is a transport-level failure from the rendering API. Server
// errors are worth one retry.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("modelslab API error: %d", e.StatusCode)
}

// Transient marks server-side failures as retryable.
func (e *HTTPError) Transient() bool {
	return resilience.IsRetryableHTTPStatus(e.StatusCode)
}

// StatusError is a terminal non-success status in an otherwise valid
// response body. Never retried.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("modelslab returned non-success status %q", e.Status)
}

// Config tunes the image-to-image renderer.
type Config struct {
	APIKey      string
	ModelID     string
	AspectRatio string
	APIURL      string
}

// renderRequest is the v7 image-to-image payload. The first init image is
// the base person photo, the rest are clothing references.
type renderRequest struct {
	InitImage   []string `json:"init_image"`
	Prompt      string   `json:"prompt"`
	ModelID     string   `json:"model_id"`
	AspectRatio string   `json:"aspect-ratio"`
	Key         string   `json:"key"`
}

type renderResponse struct {
	Status     string   `json:"status"`
	Output     []string `json:"output"`
	ProxyLinks []string `json:"proxy_links"`
}

// Renderer composes outfit previews through the Modelslab image-to-image
// endpoint.
type Renderer struct {
	l          pkgLog.Logger
	cfg        Config
	httpClient *http.Client
}

// New creates a renderer. The API key is required.
func New(l pkgLog.Logger, cfg Config) (*Renderer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("modelslab: API key is required")
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.AspectRatio == "" {
		cfg.AspectRatio = DefaultAspectRatio
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	return &Renderer{
		l:   l,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Render requests one composed image and returns its URL, preferring the
// primary output field over the proxied links.
func (r *Renderer) Render(ctx context.Context, baseImageURL string, productImageURLs []string, prompt string) (string, error) {
	initImages := make([]string, 0, len(productImageURLs)+1)
	initImages = append(initImages, baseImageURL)
	initImages = append(initImages, productImageURLs...)

	body, err := json.Marshal(renderRequest{
		InitImage:   initImages,
		Prompt:      prompt,
		ModelID:     r.cfg.ModelID,
		AspectRatio: r.cfg.AspectRatio,
		Key:         r.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.APIURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call modelslab API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode}
	}

	var result renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode render response: %w", err)
	}

	if result.Status != "success" {
		return "", &StatusError{Status: result.Status}
	}

	if len(result.Output) > 0 && result.Output[0] != "" {
		return result.Output[0], nil
	}
	if len(result.ProxyLinks) > 0 && result.ProxyLinks[0] != "" {
		return result.ProxyLinks[0], nil
	}
	return "", fmt.Errorf("modelslab response contains no usable image URL")
}
