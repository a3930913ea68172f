package llm

import (
	"context"
	"time"

	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/store"
)

// LoggingProvider records request metadata for every call: to the
// structured log always, and to the event store when one is configured.
// Prompts and responses are never recorded.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps p. repo and log may be nil.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	kv := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", purpose,
		"attempt", AttemptFrom(ctx),
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if c := LookupCost(data.Model); c != nil {
		kv = append(kv, "cost_usd", c.Cost(data.InputTokens, data.OutputTokens))
	}
	if err != nil {
		l.log.Warn("llm request failed", append(kv, "error", err)...)
	} else {
		l.log.Info("llm request", kv...)
	}

	if l.repo != nil {
		// A failed write must not fail the request.
		if recErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
			l.log.Warn("failed to record llm request", "error", recErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
