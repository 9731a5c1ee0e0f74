package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns defaults with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Configured reports whether a provider has been selected.
func (c Config) Configured() bool {
	return c.Provider != ""
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// ApplyEnv overlays VALENZ_* variables on cfg. Setting a provider key without
// VALENZ_LLM_PROVIDER selects that provider if none is selected yet.
func ApplyEnv(cfg Config) Config {
	env := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	env("VALENZ_LLM_PROVIDER", &cfg.Provider)

	env("VALENZ_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey)
	env("VALENZ_ANTHROPIC_MODEL", &cfg.Anthropic.Model)

	env("VALENZ_OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	env("VALENZ_OPENAI_MODEL", &cfg.OpenAI.Model)
	env("VALENZ_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL)

	env("VALENZ_GEMINI_API_KEY", &cfg.Gemini.APIKey)
	env("VALENZ_GEMINI_MODEL", &cfg.Gemini.Model)

	env("VALENZ_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey)
	env("VALENZ_OPENROUTER_MODEL", &cfg.OpenRouter.Model)

	if cfg.Provider == "" {
		switch {
		case cfg.Anthropic.APIKey != "":
			cfg.Provider = "anthropic"
		case cfg.OpenAI.APIKey != "":
			cfg.Provider = "openai"
		case cfg.Gemini.APIKey != "":
			cfg.Provider = "gemini"
		case cfg.OpenRouter.APIKey != "":
			cfg.Provider = "openrouter"
		}
	}
	return cfg
}

// ConfigFromEnv builds a Config from defaults and VALENZ_* variables.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// Discover fills in a provider from the standard vendor API key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// when cfg has none selected. It returns false if nothing was found.
func Discover(cfg Config) (Config, bool) {
	if cfg.Configured() {
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider, cfg.Gemini.APIKey = "gemini", k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider, cfg.OpenAI.APIKey = "openai", k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider, cfg.Anthropic.APIKey = "anthropic", k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider, cfg.OpenRouter.APIKey = "openrouter", k
		return cfg, true
	}
	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "VALENZ_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "VALENZ_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "VALENZ_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "VALENZ_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
