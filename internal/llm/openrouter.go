package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openrouterModels maps friendly names to OpenRouter model slugs.
var openrouterModels = map[string]string{
	"gemini-flash": "google/gemini-2.5-flash",
	"claude-haiku": "anthropic/claude-haiku-4.5",
	"gpt-4o-mini":  "openai/gpt-4o-mini",
}

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newChatCompletionsProvider("openrouter", cfg.APIKey, baseURL, resolveModel(cfg.Model, openrouterModels))
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
