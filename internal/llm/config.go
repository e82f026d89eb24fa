package llm

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `env:"VOLTSCOPE_LLM_PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	// Zero disables the bound.
	Timeout time.Duration `env:"VOLTSCOPE_LLM_TIMEOUT" envDefault:"0s"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `env:"VOLTSCOPE_GEMINI_API_KEY"`
	Model   string `env:"VOLTSCOPE_GEMINI_MODEL" envDefault:"gemini-flash"`
	BaseURL string `env:"VOLTSCOPE_GEMINI_BASE_URL"` // Optional. Used by tests and proxies.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `env:"VOLTSCOPE_ANTHROPIC_API_KEY"`
	Model   string `env:"VOLTSCOPE_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
	BaseURL string `env:"VOLTSCOPE_ANTHROPIC_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"VOLTSCOPE_OPENAI_API_KEY"`
	Model   string `env:"VOLTSCOPE_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"VOLTSCOPE_OPENAI_BASE_URL"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"VOLTSCOPE_OPENROUTER_API_KEY"`
	Model   string `env:"VOLTSCOPE_OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"VOLTSCOPE_OPENROUTER_BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts defaults to 1: every narrative call is a single request
// unless retries are explicitly enabled.
type RetryConfig struct {
	MaxAttempts int           `env:"VOLTSCOPE_LLM_MAX_ATTEMPTS" envDefault:"1"`
	InitialWait time.Duration `env:"VOLTSCOPE_LLM_RETRY_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"VOLTSCOPE_LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"VOLTSCOPE_LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns a Config holding only the tag defaults, ignoring
// the process environment.
func DefaultConfig() Config {
	cfg, err := parseConfig(map[string]string{})
	if err != nil {
		// Tag defaults are static; a failure here is a programming error.
		panic(fmt.Sprintf("llm: invalid config defaults: %v", err))
	}
	return cfg
}

// ConfigFromEnv builds a Config from VOLTSCOPE_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return parseConfig(nil)
}

// parseConfig parses Config from environ, or from the process environment
// when environ is nil.
func parseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse llm config: %w", err)
	}
	return cfg, nil
}

// ResolveConfig reads VOLTSCOPE_* settings. When the selected provider has
// no key, the conventional key variables are checked and the first hit
// selects the provider. Models, retry and timeout settings are kept.
func ResolveConfig() (Config, error) {
	return resolveConfig(nil)
}

func resolveConfig(environ map[string]string) (Config, error) {
	cfg, err := parseConfig(environ)
	if err != nil {
		return Config{}, err
	}
	if cfg.APIKey() != "" {
		return cfg, nil
	}
	if found, ok := discoverConfig(environ); ok {
		cfg.Provider = found.Provider
		cfg = cfg.WithAPIKey(found.APIKey())
	}
	return cfg, nil
}

// discoveredKeys lists the conventional API key variables, in lookup order.
type discoveredKeys struct {
	Gemini     string `env:"GEMINI_API_KEY"`
	Generic    string `env:"API_KEY"`
	OpenAI     string `env:"OPENAI_API_KEY"`
	Anthropic  string `env:"ANTHROPIC_API_KEY"`
	OpenRouter string `env:"OPENROUTER_API_KEY"`
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, generic API_KEY for Gemini, OpenAI, Anthropic, OpenRouter) and
// returns a Config for the first provider whose key is found.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	return discoverConfig(nil)
}

func discoverConfig(environ map[string]string) (Config, bool) {
	var keys discoveredKeys
	if err := env.ParseWithOptions(&keys, env.Options{Environment: environ}); err != nil {
		return Config{}, false
	}

	cfg := DefaultConfig()
	switch {
	case keys.Gemini != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = keys.Gemini
	case keys.Generic != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = keys.Generic
	case keys.OpenAI != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = keys.OpenAI
	case keys.Anthropic != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = keys.Anthropic
	case keys.OpenRouter != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = keys.OpenRouter
	default:
		return Config{}, false
	}
	return cfg, true
}

// APIKey returns the key of the selected provider. The mock provider
// needs no key and reports "mock" so it counts as configured.
func (c Config) APIKey() string {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey
	case "anthropic":
		return c.Anthropic.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "openrouter":
		return c.OpenRouter.APIKey
	case "mock":
		return "mock"
	}
	return ""
}

// Model returns the model name of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "gemini":
		return c.Gemini.Model
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "demo"
	}
	return ""
}

// WithAPIKey returns a copy of c with the selected provider's key replaced.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
	return c
}

// ErrMissingAPIKey is wrapped by Validate when the selected provider has
// no key. Callers that can run without a key test for it with errors.Is.
var ErrMissingAPIKey = errors.New("API key is required")

// Validate checks that the provider is known and has its API key set.
func (c Config) Validate() error {
	var envKey string
	switch c.Provider {
	case "gemini":
		envKey = "VOLTSCOPE_GEMINI_API_KEY"
	case "anthropic":
		envKey = "VOLTSCOPE_ANTHROPIC_API_KEY"
	case "openai":
		envKey = "VOLTSCOPE_OPENAI_API_KEY"
	case "openrouter":
		envKey = "VOLTSCOPE_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey() == "" {
		return fmt.Errorf("%s for the %s provider: %w", envKey, c.Provider, ErrMissingAPIKey)
	}
	return nil
}
