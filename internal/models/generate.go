package models

// GenerateRequest is the body of POST /api/generate-plan
type GenerateRequest struct {
	Prompt string `json:"prompt" example:"Create a personalized health plan..."`
}

// GenerateResponse carries the raw model output, expected to be a plan JSON document
type GenerateResponse struct {
	Content string `json:"content"`
}

// HealthResponse is returned by the liveness and readiness probes
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}
