package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/bizmatters/healthpath/internal/logger"
)

// GeminiClient completes prompts with the Gemini generateContent API
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *genai.Client
	http    *http.Client
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

// NewGeminiClient creates a new Gemini completer. Without an API key no SDK
// client is built and Complete reports the missing credential.
func NewGeminiClient(s Settings, log *logger.Logger) (*GeminiClient, error) {
	if s.Model == "" {
		s.Model = ProviderGemini.DefaultModel()
	}
	c := &GeminiClient{
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: s.BaseURL,
		http:    newHTTPClient(s.Timeout),
		tracer:  otel.Tracer("gemini-client"),
		breaker: newBreaker("gemini", log),
		log:     log,
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GeminiClient) connect() error {
	if c.apiKey == "" {
		c.client = nil
		return nil
	}
	cfg := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.client = client
	return nil
}

// SetBaseURL sets the base URL for testing purposes
func (c *GeminiClient) SetBaseURL(baseURL string) error {
	c.baseURL = baseURL
	return c.connect()
}

func (c *GeminiClient) Provider() Provider { return ProviderGemini }

func (c *GeminiClient) Model() string { return c.model }

func (c *GeminiClient) Configured() bool { return c.apiKey != "" }

// Complete sends the prompt with the fixed system instruction and a JSON
// response type
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("model", c.model),
		attribute.Int("prompt_length", len(prompt)),
	)

	if !c.Configured() || c.client == nil {
		err := &CredentialError{Provider: ProviderGemini}
		span.RecordError(err)
		return "", err
	}

	content, err := execute(c.breaker, func() (string, error) {
		return c.completeInternal(ctx, prompt)
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.Int("content_length", len(content)))
	return content, nil
}

func (c *GeminiClient) completeInternal(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](Temperature),
		MaxOutputTokens:   MaxOutputTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", geminiError(err)
	}
	text := resp.Text()
	if text == "" {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Err: ErrEmptyCompletion}
	}
	return text, nil
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: statusOr(apiErr.Code), Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &UpstreamError{StatusCode: statusOr(apiErrPtr.Code), Message: apiErrPtr.Message, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &UpstreamError{StatusCode: http.StatusBadGateway, Err: fmt.Errorf("gemini request failed: %w", err)}
}
