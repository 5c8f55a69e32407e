package models

// ErrorResponse represents an API error response. Clients read only Error;
// Code classifies the failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest        = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	ErrCodeProviderNotConfigured = "PROVIDER_NOT_CONFIGURED"
	ErrCodeUpstreamError         = "UPSTREAM_ERROR"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// User-facing error messages returned by the generation endpoint
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgPromptRequired   = "Prompt is required"
	MsgGenerationFailed = "Failed to generate health plan"
)
