package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/metrics"
	"github.com/bizmatters/healthpath/internal/models"
	"github.com/bizmatters/healthpath/internal/upstream"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	completer upstream.Completer
	metrics   *metrics.GenerationMetrics
	log       *logger.Logger
	tracer    trace.Tracer
}

// NewHandler creates a new gateway handler
func NewHandler(completer upstream.Completer, m *metrics.GenerationMetrics, log *logger.Logger) *Handler {
	return &Handler{
		completer: completer,
		metrics:   m,
		log:       log,
		tracer:    otel.Tracer("gateway"),
	}
}

// GeneratePlan godoc
// @Summary Generate a health plan
// @Description Forwards the compiled questionnaire prompt to the configured model provider and returns the raw model output
// @Tags plans
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Compiled prompt"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /generate-plan [post]
func (h *Handler) GeneratePlan(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.generate_plan")
	defer span.End()

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.MsgPromptRequired,
			Code:  models.ErrCodeInvalidRequest,
		})
		return
	}

	provider := string(h.completer.Provider())
	model := h.completer.Model()
	span.SetAttributes(
		attribute.String("provider", provider),
		attribute.String("model", model),
		attribute.String("trace_id", c.GetString(traceIDKey)),
	)

	if !h.completer.Configured() {
		err := &upstream.CredentialError{Provider: h.completer.Provider()}
		span.RecordError(err)
		h.log.Error("Model provider not configured", "provider", provider)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: err.Error(),
			Code:  models.ErrCodeProviderNotConfigured,
		})
		return
	}

	start := time.Now()
	h.metrics.RecordStarted(ctx, provider, model)

	content, err := h.completer.Complete(ctx, req.Prompt)
	if err != nil {
		span.RecordError(err)
		status, resp := errorResponse(err)
		h.metrics.RecordFailed(ctx, provider, model, resp.Code, time.Since(start))
		h.log.Error("Plan generation failed",
			"provider", provider,
			"status", status,
			"error", err.Error(),
			"trace_id", c.GetString(traceIDKey),
		)
		c.JSON(status, resp)
		return
	}

	h.metrics.RecordCompleted(ctx, provider, model, time.Since(start))
	span.SetAttributes(attribute.Int("content_length", len(content)))
	c.JSON(http.StatusOK, models.GenerateResponse{Content: content})
}

// Preflight answers OPTIONS requests that carry no CORS headers
func (h *Handler) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusOK)
}

// MethodNotAllowed rejects every method other than POST on the API
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
		Error: models.MsgMethodNotAllowed,
		Code:  models.ErrCodeMethodNotAllowed,
	})
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Ready once the model provider credential is configured
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /ready [get]
func (h *Handler) Ready(c *gin.Context) {
	if !h.completer.Configured() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: (&upstream.CredentialError{Provider: h.completer.Provider()}).Error(),
			Code:  models.ErrCodeProviderNotConfigured,
		})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ready", Provider: string(h.completer.Provider())})
}

// errorResponse maps a completer error to the response status and body
func errorResponse(err error) (int, models.ErrorResponse) {
	var upErr *upstream.UpstreamError
	switch {
	case errors.Is(err, upstream.ErrMissingCredential):
		return http.StatusInternalServerError, models.ErrorResponse{
			Error: err.Error(),
			Code:  models.ErrCodeProviderNotConfigured,
		}
	case errors.As(err, &upErr):
		return upErr.StatusCode, models.ErrorResponse{
			Error: upErr.Error(),
			Code:  models.ErrCodeUpstreamError,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, models.ErrorResponse{
			Error: models.MsgGenerationFailed,
			Code:  models.ErrCodeUpstreamError,
		}
	}
	return http.StatusInternalServerError, models.ErrorResponse{
		Error: models.MsgGenerationFailed,
		Code:  models.ErrCodeInternalError,
	}
}
