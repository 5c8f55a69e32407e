package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want []interface{}
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "plain values pass through",
			in:   []interface{}{"status", 200, "path", "/api/generate-plan"},
			want: []interface{}{"status", 200, "path", "/api/generate-plan"},
		},
		{
			name: "credentials are masked",
			in:   []interface{}{"openai_api_key", "sk-123", "Authorization", "Bearer x"},
			want: []interface{}{"openai_api_key", "[REDACTED]", "Authorization", "[REDACTED]"},
		},
		{
			name: "dangling key kept",
			in:   []interface{}{"status", 200, "orphan"},
			want: []interface{}{"status", 200, "orphan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeKVs(tt.in))
		})
	}
}

func TestNewWithOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthpath.log")

	log, err := NewWithOutput("development", path)
	require.NoError(t, err)

	log.With("component", "test").Info("hello", "api_key", "sk-secret")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "[REDACTED]")
	assert.NotContains(t, string(data), "sk-secret")
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Warn("discarded", "key", "value")
	})
}
