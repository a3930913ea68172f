package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, anthropicMessage(`{"topic":"Moon"}`, "end_turn"))
	})
	resp, err := p.Generate(context.Background(), Request{
		System:      "You design lesson games.",
		Messages:    []Message{{Role: RoleUser, Content: "Make a plan."}},
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd || resp.Model != "claude-haiku-4-5" {
		t.Fatalf("stop %q model %q", resp.StopReason, resp.Model)
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(error) bool
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   anthropicError("rate_limit_error"),
			check:  func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   anthropicError("api_error"),
			check:  func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
		{
			name:   "bad key",
			status: http.StatusUnauthorized,
			body:   anthropicError("authentication_error"),
			check:  func(err error) bool { var e *ErrAuthentication; return errors.As(err, &e) },
		},
		{
			name:   "truncated",
			status: http.StatusOK,
			body:   anthropicMessage(`{"topic":`, "max_tokens"),
			check:  func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		msg := anthropicMessage("", "end_turn")
		msg["content"] = []map[string]any{
			{"type": "text", "text": `{"topic":`},
			{"type": "text", "text": `"Moon"}`},
		}
		writeJSON(w, http.StatusOK, msg)
	})
	if p.ModelID() != "claude-haiku-4-5" {
		t.Fatalf("model = %q, want resolved friendly name", p.ModelID())
	}
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Make a plan."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"topic":"Moon"}` {
		t.Fatalf("content = %s", resp.Content)
	}
}
