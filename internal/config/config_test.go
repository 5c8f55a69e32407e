package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/upstream"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MODEL_PROVIDER", "MODEL_NAME", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"HEALTHPATH_PROXY_URL", "HEALTHPATH_DB", "LOG_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "http://localhost:8080/api/generate-plan", cfg.Client.ProxyURL)
	assert.Equal(t, 120*time.Second, cfg.ClientTimeout())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())

	settings, err := cfg.Upstream()
	require.NoError(t, err)
	assert.Equal(t, upstream.ProviderOpenAI, settings.Provider)
	assert.Empty(t, settings.APIKey)
	assert.Equal(t, 90*time.Second, settings.Timeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "healthpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
provider:
  name: gemini
  model: gemini-1.5-pro
  gemini_api_key: from-file
client:
  timeout: 45s
storage:
  path: /tmp/hp.db
`), 0o644))

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("HEALTHPATH_PROXY_URL", "http://api.internal/api/generate-plan")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/hp.db", cfg.Storage.Path)
	assert.Equal(t, "http://api.internal/api/generate-plan", cfg.Client.ProxyURL)
	assert.Equal(t, 45*time.Second, cfg.ClientTimeout())
	assert.Equal(t, "15s", cfg.Server.ReadTimeout, "unset keys keep defaults")

	settings, err := cfg.Upstream()
	require.NoError(t, err)
	assert.Equal(t, upstream.ProviderGemini, settings.Provider)
	assert.Equal(t, "from-env", settings.APIKey)
	assert.Equal(t, "gemini-1.5-pro", settings.Model)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider.Name = "llama" }, wantErr: "invalid provider"},
		{name: "port not a number", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: "invalid server port"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = "70000" }, wantErr: "invalid server port"},
		{name: "bad duration", mutate: func(c *Config) { c.Client.Timeout = "soon" }, wantErr: "invalid client.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MODEL_PROVIDER=gemini\n"), 0o644))

	// t.Setenv restores the variable afterwards; godotenv only fills unset ones
	require.NoError(t, os.Unsetenv("MODEL_PROVIDER"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider.Name)
}
