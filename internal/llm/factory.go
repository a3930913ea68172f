package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/store"
)

// NewProvider creates the configured Provider wrapped as
// caller → timeout → retry → logging → base. repo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewSampleProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if log != nil {
		log = log.With("component", "llm")
	}
	logged := WithLogging(base, cfg.Provider, repo, log)
	retried := WithRetry(logged, cfg.Retry, log)
	return WithTimeout(retried, cfg.Timeout), nil
}
