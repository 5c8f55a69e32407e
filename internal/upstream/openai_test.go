package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/logger"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewOpenAIClient(Settings{APIKey: "sk-test"}, logger.NewNop())
	client.SetBaseURL(server.URL)
	return client
}

func TestNewOpenAIClient(t *testing.T) {
	client := NewOpenAIClient(Settings{APIKey: "sk-test"}, logger.NewNop())

	assert.NotNil(t, client.client)
	assert.NotNil(t, client.tracer)
	assert.NotNil(t, client.breaker)
	assert.Equal(t, "gpt-4o", client.Model())
	assert.Equal(t, ProviderOpenAI, client.Provider())
	assert.True(t, client.Configured())
}

func TestOpenAIClient_Complete(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedResult string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful_completion",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

				var req struct {
					Model    string `json:"model"`
					Messages []struct {
						Role    string `json:"role"`
						Content string `json:"content"`
					} `json:"messages"`
					Temperature float64 `json:"temperature"`
					MaxTokens   int     `json:"max_tokens"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-4o", req.Model)
				require.Len(t, req.Messages, 2)
				assert.Equal(t, "system", req.Messages[0].Role)
				assert.Equal(t, SystemInstruction, req.Messages[0].Content)
				assert.Equal(t, "user", req.Messages[1].Role)
				assert.Equal(t, "make me a plan", req.Messages[1].Content)
				assert.InDelta(t, 0.7, req.Temperature, 0.001)
				assert.Equal(t, 4000, req.MaxTokens)

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"overview\":{}}"},"finish_reason":"stop"}]}`))
			},
			expectedResult: `{"overview":{}}`,
		},
		{
			name: "provider_error_message",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedError:  "Rate limit reached",
		},
		{
			name: "provider_error_without_message",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("upstream exploded"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  FallbackMessage,
		},
		{
			name: "no_choices",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":"chatcmpl-2","choices":[]}`))
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestOpenAIClient(t, tt.serverResponse)

			result, err := client.Complete(context.Background(), "make me a plan")

			if tt.expectedError != "" {
				require.Error(t, err)
				var upErr *UpstreamError
				require.True(t, errors.As(err, &upErr))
				assert.Equal(t, tt.expectedStatus, upErr.StatusCode)
				assert.Equal(t, tt.expectedError, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestOpenAIClient_MissingCredential(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewOpenAIClient(Settings{}, logger.NewNop())
	client.SetBaseURL(server.URL)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, "OpenAI API key not configured", err.Error())
	assert.False(t, client.Configured())
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestOpenAIClient_BreakerFailsFast(t *testing.T) {
	var hits int32
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("down"))
	})

	for i := 0; i < 6; i++ {
		_, err := client.Complete(context.Background(), "prompt")
		require.Error(t, err)
	}
	require.Equal(t, int32(6), atomic.LoadInt32(&hits))

	_, err := client.Complete(context.Background(), "prompt")
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Equal(t, int32(6), atomic.LoadInt32(&hits), "open breaker must not call the provider")
}

func TestOpenAIClient_ClientErrorsDoNotTrip(t *testing.T) {
	var hits int32
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"context length exceeded"}}`))
	})

	for i := 0; i < 8; i++ {
		_, err := client.Complete(context.Background(), "prompt")
		require.Error(t, err)
	}
	assert.Equal(t, int32(8), atomic.LoadInt32(&hits))
}
