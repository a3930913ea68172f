package llm

import "context"

type ctxKey int

const (
	purposeKey ctxKey = iota
	attemptKey
)

// UnknownPurpose labels calls made without WithPurpose.
const UnknownPurpose = "unknown"

// WithPurpose tags ctx with what the call is for, e.g. "lesson-plan".
// The tag is stored with every recorded request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return UnknownPurpose
}

func withAttempt(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, attemptKey, n)
}

// AttemptFrom returns the 1-based try number set by the retry decorator.
// Calls outside a retry loop are attempt 1.
func AttemptFrom(ctx context.Context) int {
	if n, ok := ctx.Value(attemptKey).(int); ok && n > 0 {
		return n
	}
	return 1
}
