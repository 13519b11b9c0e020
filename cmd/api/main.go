package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-outfit-assistant/config"
	_ "ai-outfit-assistant/docs" // Swagger docs
	"ai-outfit-assistant/internal/httpserver"
	"ai-outfit-assistant/internal/metrics"
	stylistHTTP "ai-outfit-assistant/internal/stylist/delivery/http"
	"ai-outfit-assistant/internal/stylist/provider"
	"ai-outfit-assistant/internal/stylist/provider/apify"
	"ai-outfit-assistant/internal/stylist/provider/fixture"
	"ai-outfit-assistant/internal/stylist/provider/modelslab"
	"ai-outfit-assistant/internal/stylist/usecase"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/log"
	"ai-outfit-assistant/pkg/resilience"
)

// @title       AI Outfit Assistant API
// @description AI-powered outfit planning: event understanding, outfit plans, catalog resolution, and preview rendering.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting AI Outfit Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Catalog provider: %s", cfg.Catalog.Provider)

	// 3. Metrics
	m := metrics.New(httpserver.ServiceName)

	// 4. LLM provider manager
	llm, err := llmprovider.NewManagerFromConfig(ctx, llmFactoryConfig(cfg.LLM), logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}

	// 5. Product catalog
	catalog, err := buildCatalog(logger, cfg)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize catalog provider: %v", err)
		return
	}

	// 6. Preview renderer (optional)
	var renderer provider.ImageRenderer
	if cfg.Modelslab.APIKey != "" {
		r, rErr := modelslab.New(logger, modelslab.Config{
			APIKey:      cfg.Modelslab.APIKey,
			ModelID:     cfg.Modelslab.ModelID,
			AspectRatio: cfg.Modelslab.AspectRatio,
			APIURL:      cfg.Modelslab.APIURL,
		})
		if rErr != nil {
			logger.Errorf(ctx, "Failed to initialize preview renderer: %v", rErr)
			return
		}
		renderer = r
	} else {
		logger.Warn(ctx, "MODELSLAB_API_KEY not set, preview rendering disabled")
	}

	// 7. Stylist use case
	exec := resilience.NewExecutor(resilience.DefaultConfig())
	stylistUC := usecase.New(logger, llm, catalog, renderer, exec, m, usecase.Config{
		MaxPreviewOutfits: cfg.Pipeline.MaxPreviewOutfits,
		CandidateLimit:    cfg.Pipeline.CandidateLimit,
	})

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		Metrics:        m,
		StylistHandler: stylistHTTP.New(logger, stylistUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// buildCatalog picks the catalog backend from config. The fixture
// catalog needs no credentials and is the default outside production.
func buildCatalog(logger log.Logger, cfg *config.Config) (provider.CatalogProvider, error) {
	switch cfg.Catalog.Provider {
	case "apify":
		return apify.New(logger, apify.Config{
			APIToken:        cfg.Apify.APIToken,
			ActorID:         cfg.Apify.ActorID,
			BaseURL:         cfg.Apify.BaseURL,
			MaxWait:         cfg.Apify.MaxWait,
			PollInterval:    cfg.Apify.PollInterval,
			RateLimitPerMin: cfg.Apify.RateLimitPerMin,
			CacheSize:       cfg.Apify.CacheSize,
			CacheTTL:        cfg.Apify.CacheTTL,
		})
	case "fixture":
		return fixture.New()
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", cfg.Catalog.Provider)
	}
}

// llmFactoryConfig converts the YAML-facing LLM config into the factory
// form. Invalid durations fall back to the factory defaults (zero).
func llmFactoryConfig(cfg config.LLMConfig) llmprovider.FactoryConfig {
	providers := make([]llmprovider.ProviderConfig, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		providers = append(providers, llmprovider.ProviderConfig{
			Name:     pc.Name,
			Enabled:  pc.Enabled,
			Priority: pc.Priority,
			APIKey:   pc.APIKey,
			BaseURL:  pc.BaseURL,
			Model:    pc.Model,
		})
	}

	retryDelay, _ := time.ParseDuration(cfg.RetryDelay)
	maxTimeout, _ := time.ParseDuration(cfg.MaxTotalTimeout)

	return llmprovider.FactoryConfig{
		Providers:       providers,
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTimeout,
	}
}
