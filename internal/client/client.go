package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/models"
)

// DefaultEndpoint is the generation endpoint of a locally running API server
const DefaultEndpoint = "http://localhost:8080/api/generate-plan"

// User-facing failure messages
const (
	ProxyUnavailableMessage = "Server not configured. Please start the HealthPath API server (cmd/api) and point proxy_url at it."
	GenerationFailedMessage = "Failed to generate health plan"
)

// ErrProxyUnavailable means the endpoint answered with something other than
// JSON, usually a static page or a different service
var ErrProxyUnavailable = errors.New("generation proxy unavailable")

// TransportError is any failure to obtain content from the proxy. Message is
// safe to show to the user.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Generator obtains raw model output for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client posts prompts to the generation proxy
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
	log        *logger.Logger
}

// New creates a proxy client; an empty endpoint uses DefaultEndpoint
func New(endpoint string, timeout time.Duration, log *logger.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("healthpath-client"),
		log:        log,
	}
}

// Endpoint returns the configured proxy URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate sends the prompt and returns the content field of the response
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "client.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("endpoint", c.endpoint),
		attribute.Int("prompt_length", len(prompt)),
	)

	content, err := c.generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		c.log.Warn("Plan generation request failed", "endpoint", c.endpoint, "error", err)
		return "", err
	}
	return content, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(models.GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", &TransportError{Message: GenerationFailedMessage, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Message: GenerationFailedMessage, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Message: GenerationFailedMessage, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		io.Copy(io.Discard, resp.Body)
		return "", &TransportError{StatusCode: resp.StatusCode, Message: ProxyUnavailableMessage, Err: ErrProxyUnavailable}
	}

	var data struct {
		Content string `json:"content"`
		Error   string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := data.Error
		if decodeErr != nil || msg == "" {
			msg = GenerationFailedMessage
		}
		return "", &TransportError{StatusCode: resp.StatusCode, Message: msg, Err: fmt.Errorf("proxy returned status %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Message: GenerationFailedMessage, Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}
	return data.Content, nil
}
