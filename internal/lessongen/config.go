package lessongen

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used when nothing is configured.
// A full plan is a few kilobytes of JSON, so the token ceiling is generous.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
