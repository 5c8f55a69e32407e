package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bizmatters/healthpath/internal/logger"
)

// OpenAIClient completes prompts with the OpenAI chat completions API
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *openai.Client
	http    *http.Client
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

// NewOpenAIClient creates a new OpenAI completer
func NewOpenAIClient(s Settings, log *logger.Logger) *OpenAIClient {
	if s.Model == "" {
		s.Model = ProviderOpenAI.DefaultModel()
	}
	c := &OpenAIClient{
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: s.BaseURL,
		http:    newHTTPClient(s.Timeout),
		tracer:  otel.Tracer("openai-client"),
		breaker: newBreaker("openai", log),
		log:     log,
	}
	c.client = c.newClient()
	return c
}

func (c *OpenAIClient) newClient() *openai.Client {
	cfg := openai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cfg.HTTPClient = c.http
	return openai.NewClientWithConfig(cfg)
}

// SetBaseURL sets the base URL for testing purposes
func (c *OpenAIClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
	c.client = c.newClient()
}

func (c *OpenAIClient) Provider() Provider { return ProviderOpenAI }

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Configured() bool { return c.apiKey != "" }

// Complete sends the prompt with the fixed system instruction
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openai.complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("model", c.model),
		attribute.Int("prompt_length", len(prompt)),
	)

	if !c.Configured() {
		err := &CredentialError{Provider: ProviderOpenAI}
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

func (c *OpenAIClient) completeInternal(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Err: ErrEmptyCompletion}
	}
	return resp.Choices[0].Message.Content, nil
}

// openAIError keeps the provider's status and message
func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: statusOr(apiErr.HTTPStatusCode), Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: statusOr(reqErr.HTTPStatusCode), Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &UpstreamError{StatusCode: http.StatusBadGateway, Err: fmt.Errorf("openai request failed: %w", err)}
}

func statusOr(code int) int {
	if code == 0 {
		return http.StatusBadGateway
	}
	return code
}
