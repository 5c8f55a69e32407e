package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bizmatters/healthpath/internal/logger"
)

// Fixed generation parameters
const (
	SystemInstruction = "You are an expert health and fitness coach. Always respond with valid JSON only."
	Temperature       = 0.7
	MaxOutputTokens   = 4000
)

// FallbackMessage is reported when the provider gives no usable error message
const FallbackMessage = "Failed to generate health plan"

// Provider names a model backend
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// DisplayName is the provider name used in user-facing messages
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	}
	return string(p)
}

// DefaultModel returns the model used when none is configured
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-4o"
	}
}

// ParseProvider converts a configured provider name
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderOpenAI, nil
	case ProviderOpenAI, ProviderGemini:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

var (
	ErrUnknownProvider   = errors.New("unknown model provider")
	ErrMissingCredential = errors.New("API key not configured")
	ErrEmptyCompletion   = errors.New("model returned no content")
)

// CredentialError reports a provider without an API key
type CredentialError struct {
	Provider Provider
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s %s", e.Provider.DisplayName(), ErrMissingCredential)
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// UpstreamError is a failed provider call. StatusCode is the provider's
// HTTP status, or 502 when none was received.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Completer sends one prompt to a model and returns its text output
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() Provider
	Model() string
	Configured() bool
}

// Settings selects and configures a provider
type Settings struct {
	Provider Provider
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint; empty uses the default
	BaseURL string
	Timeout time.Duration
}

// New builds the completer for the configured provider. A missing API key is
// not an error here; Complete reports it per request.
func New(s Settings, log *logger.Logger) (Completer, error) {
	if s.Model == "" {
		s.Model = s.Provider.DefaultModel()
	}
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	switch s.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(s, log), nil
	case ProviderGemini:
		return NewGeminiClient(s, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
