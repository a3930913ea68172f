package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// envPrefix namespaces the application's own environment variables.
const envPrefix = "LESSONARCADE_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend serves requests.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, e.g. a gateway or proxy
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for compatible endpoints
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig selects Gemini. Lesson plans are long, so the timeout is
// generous.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		OpenRouter: OpenRouterConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ApplyEnv overlays LESSONARCADE_* variables on cfg.
func ApplyEnv(cfg Config) Config {
	setFromEnv(&cfg.Provider, "LLM_PROVIDER")

	setFromEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.BaseURL, "GEMINI_BASE_URL")

	setFromEnv(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")

	setFromEnv(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "ANTHROPIC_MODEL")
	setFromEnv(&cfg.Anthropic.BaseURL, "ANTHROPIC_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")

	if v := os.Getenv(envPrefix + "LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*dst = v
	}
}

// standardKeys lists the vendor key variables in discovery priority order.
var standardKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// ResolveConfig applies the environment to base and, when the selected
// provider still has no key, falls back to the vendors' own key variables.
// If the selected provider has no standard key either, the first provider
// whose key is present is chosen instead.
func ResolveConfig(base Config) Config {
	cfg := ApplyEnv(base)
	if cfg.Provider == ProviderMock || cfg.apiKey() != "" {
		return cfg
	}

	for _, k := range standardKeys {
		if k.provider == cfg.Provider {
			if v := os.Getenv(k.env); v != "" {
				cfg.setAPIKey(v)
				return cfg
			}
		}
	}
	for _, k := range standardKeys {
		if v := os.Getenv(k.env); v != "" {
			cfg.Provider = k.provider
			cfg.setAPIKey(v)
			return cfg
		}
	}
	return cfg
}

func (c Config) apiKey() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

func (c *Config) setAPIKey(key string) {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		if c.apiKey() == "" {
			return fmt.Errorf("no API key for the %s provider: set %s%s_API_KEY", c.Provider, envPrefix, envName(c.Provider))
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderAnthropic:
		return "ANTHROPIC"
	}
	return "GEMINI"
}

// ModelFor returns the configured model for the selected provider.
func (c Config) ModelFor() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}
