package groq

import (
	"context"
	"errors"
	"net/http"
)

// IGroq defines the interface for the Groq API client.
// Implementations are safe for concurrent use.
type IGroq interface {
	// Generate sends a chat completion request to the Groq API
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// Config holds the Groq client configuration.
type Config struct {
	APIKey     string
	Model      string
	APIURL     string
	HTTPClient *http.Client
}

// Validate checks required configuration and fills defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("groq: api key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// New creates a new Groq client with the given configuration.
func New(cfg Config) (IGroq, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGroqImpl(cfg), nil
}
