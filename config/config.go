package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Outfit pipeline specifics
	Catalog   CatalogConfig
	Apify     ApifyConfig
	Modelslab ModelslabConfig
	Pipeline  PipelineConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// CatalogConfig selects the product catalog backend.
// Provider is "fixture" (embedded sample catalog) or "apify" (live scraper).
type CatalogConfig struct {
	Provider string
}

// ApifyConfig drives the Zalando scraper actor.
type ApifyConfig struct {
	APIToken        string
	ActorID         string
	BaseURL         string
	MaxWait         time.Duration
	PollInterval    time.Duration
	RateLimitPerMin int
	CacheSize       int
	CacheTTL        time.Duration
}

// ModelslabConfig drives the image-to-image preview renderer.
type ModelslabConfig struct {
	APIKey      string
	ModelID     string
	AspectRatio string
	APIURL      string
}

// PipelineConfig bounds the pipeline's fan-out and external cost.
type PipelineConfig struct {
	MaxPreviewOutfits int
	CandidateLimit    int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Catalog backend
	cfg.Catalog.Provider = viper.GetString("catalog.provider")

	// Apify scraper
	cfg.Apify.APIToken = viper.GetString("apify.api_token")
	cfg.Apify.ActorID = viper.GetString("apify.actor_id")
	cfg.Apify.BaseURL = viper.GetString("apify.base_url")
	cfg.Apify.MaxWait = viper.GetDuration("apify.max_wait")
	cfg.Apify.PollInterval = viper.GetDuration("apify.poll_interval")
	cfg.Apify.RateLimitPerMin = viper.GetInt("apify.rate_limit_per_min")
	cfg.Apify.CacheSize = viper.GetInt("apify.cache_size")
	cfg.Apify.CacheTTL = viper.GetDuration("apify.cache_ttl")
	if apifyToken := viper.GetString("apify_api_token"); apifyToken != "" {
		cfg.Apify.APIToken = apifyToken
	}

	// Modelslab renderer
	cfg.Modelslab.APIKey = viper.GetString("modelslab.api_key")
	cfg.Modelslab.ModelID = viper.GetString("modelslab.model_id")
	cfg.Modelslab.AspectRatio = viper.GetString("modelslab.aspect_ratio")
	cfg.Modelslab.APIURL = viper.GetString("modelslab.api_url")
	if modelslabKey := viper.GetString("modelslab_api_key"); modelslabKey != "" {
		cfg.Modelslab.APIKey = modelslabKey
	}

	// Pipeline bounds
	cfg.Pipeline.MaxPreviewOutfits = viper.GetInt("pipeline.max_preview_outfits")
	cfg.Pipeline.CandidateLimit = viper.GetInt("pipeline.candidate_limit")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("catalog.provider", "fixture")

	viper.SetDefault("apify.actor_id", "app~zalando-scraper")
	viper.SetDefault("apify.base_url", "https://api.apify.com/v2")
	viper.SetDefault("apify.max_wait", "90s")
	viper.SetDefault("apify.poll_interval", "3s")
	viper.SetDefault("apify.rate_limit_per_min", 30)
	viper.SetDefault("apify.cache_size", 256)
	viper.SetDefault("apify.cache_ttl", "10m")

	viper.SetDefault("modelslab.model_id", "seedream-4.0-i2i")
	viper.SetDefault("modelslab.aspect_ratio", "1:1")
	viper.SetDefault("modelslab.api_url", "https://modelslab.com/api/v7/images/image-to-image")

	viper.SetDefault("pipeline.max_preview_outfits", 3)
	viper.SetDefault("pipeline.candidate_limit", 5)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			if provider.APIKey == "" {
				fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
