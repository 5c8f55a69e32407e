package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bizmatters/healthpath/internal/upstream"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "healthpath.yaml"

// Config holds the settings of both binaries
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Client   ClientConfig   `yaml:"client"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	IdleTimeout     string `yaml:"idle_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// ProviderConfig selects the model provider behind the API server
type ProviderConfig struct {
	Name         string `yaml:"name"` // openai, gemini
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	Timeout      string `yaml:"timeout"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	ProxyURL string `yaml:"proxy_url"`
	Timeout  string `yaml:"timeout"`
}

// StorageConfig locates the local state database
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig selects the log encoder and, for the client, the log file
type LoggingConfig struct {
	Mode string `yaml:"mode"` // production, development
	File string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := stateDir()
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "120s",
			IdleTimeout:     "60s",
			ShutdownTimeout: "30s",
		},
		Provider: ProviderConfig{
			Name:    string(upstream.ProviderOpenAI),
			Timeout: "90s",
		},
		Client: ClientConfig{
			ProxyURL: "http://localhost:8080/api/generate-plan",
			Timeout:  "120s",
		},
		Storage: StorageConfig{
			Path: filepath.Join(dir, "healthpath.db"),
		},
		Logging: LoggingConfig{
			Mode: "production",
			File: filepath.Join(dir, "healthpath.log"),
		},
	}
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthpath"
	}
	return filepath.Join(home, ".healthpath")
}

// Load reads defaults, then the YAML file at path when it exists, then
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads .env style files into the environment. Missing files are
// skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if provider := os.Getenv("MODEL_PROVIDER"); provider != "" {
		c.Provider.Name = provider
	}
	if model := os.Getenv("MODEL_NAME"); model != "" {
		c.Provider.Model = model
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Provider.OpenAIAPIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Provider.GeminiAPIKey = key
	}
	if url := os.Getenv("HEALTHPATH_PROXY_URL"); url != "" {
		c.Client.ProxyURL = url
	}
	if path := os.Getenv("HEALTHPATH_DB"); path != "" {
		c.Storage.Path = path
	}
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		c.Logging.Mode = mode
	}
}

// Validate validates the configuration. A missing API key is not an error;
// the server reports it per request.
func (c *Config) Validate() error {
	if _, err := upstream.ParseProvider(c.Provider.Name); err != nil {
		return fmt.Errorf("invalid provider: %w", err)
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}
	for name, value := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"provider.timeout":        c.Provider.Timeout,
		"client.timeout":          c.Client.Timeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// Upstream returns the provider settings for the API server
func (c *Config) Upstream() (upstream.Settings, error) {
	provider, err := upstream.ParseProvider(c.Provider.Name)
	if err != nil {
		return upstream.Settings{}, err
	}
	key := c.Provider.OpenAIAPIKey
	if provider == upstream.ProviderGemini {
		key = c.Provider.GeminiAPIKey
	}
	return upstream.Settings{
		Provider: provider,
		APIKey:   key,
		Model:    c.Provider.Model,
		BaseURL:  c.Provider.BaseURL,
		Timeout:  duration(c.Provider.Timeout, 90*time.Second),
	}, nil
}

// ClientTimeout returns the client request timeout as a duration.
func (c *Config) ClientTimeout() time.Duration {
	return duration(c.Client.Timeout, 120*time.Second)
}

// ReadTimeout returns the server read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return duration(c.Server.ReadTimeout, 15*time.Second)
}

// WriteTimeout returns the server write timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return duration(c.Server.WriteTimeout, 120*time.Second)
}

// IdleTimeout returns the server idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return duration(c.Server.IdleTimeout, 60*time.Second)
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return duration(c.Server.ShutdownTimeout, 30*time.Second)
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
