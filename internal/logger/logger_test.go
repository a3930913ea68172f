package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs_RedactsCredentials(t *testing.T) {
	got := sanitizeKVs([]interface{}{"api_key", "abc", "purpose", "lesson-plan", "Token", "t"})
	assert.Equal(t, []interface{}{"api_key", redacted, "purpose", "lesson-plan", "Token", redacted}, got)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"stage", "quiz", "dangling"})
	assert.Equal(t, []interface{}{"stage", "quiz", "dangling"}, got)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New("production", path)
	require.NoError(t, err)

	log.Info("session started", "session_id", "s-1")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.Contains(t, string(data), "s-1")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.With("k", "v").Info("ignored")
}
