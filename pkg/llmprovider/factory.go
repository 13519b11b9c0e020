package llmprovider

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ai-outfit-assistant/pkg/gemini"
	"ai-outfit-assistant/pkg/groq"
	"ai-outfit-assistant/pkg/log"
)

// ProviderConfig describes a single configured LLM provider.
type ProviderConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
}

// FactoryConfig bundles everything needed to build a Manager from config.
type FactoryConfig struct {
	Providers       []ProviderConfig
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration
}

// NewManagerFromConfig builds providers from config, sorted by priority
// (lower number = tried first), and wraps them in a Manager.
func NewManagerFromConfig(ctx context.Context, cfg FactoryConfig, logger log.Logger) (*Manager, error) {
	enabled := make([]ProviderConfig, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		if pc.Enabled {
			enabled = append(enabled, pc)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	providers := make([]Provider, 0, len(enabled))
	for _, pc := range enabled {
		provider, err := buildProvider(pc)
		if err != nil {
			return nil, fmt.Errorf("failed to build provider %q: %w", pc.Name, err)
		}
		providers = append(providers, provider)
		logger.Infof(ctx, "LLM provider registered: name=%s model=%s priority=%d",
			provider.Name(), provider.Model(), pc.Priority)
	}

	return NewManager(providers, &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelay,
		MaxTotalTimeout: cfg.MaxTotalTimeout,
	}, logger), nil
}

func buildProvider(pc ProviderConfig) (Provider, error) {
	switch pc.Name {
	case "groq":
		client, err := groq.New(groq.Config{
			APIKey: pc.APIKey,
			Model:  pc.Model,
			APIURL: pc.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return NewGroqAdapter(client), nil
	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey: pc.APIKey,
			Model:  pc.Model,
			APIURL: pc.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return NewGeminiAdapter(client), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, pc.Name)
	}
}
