package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/models"
)

func TestNew_Defaults(t *testing.T) {
	c := New("", 0, logger.NewNop())
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, 90*time.Second, c.httpClient.Timeout)
}

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedResult string
		expectedError  string
		expectedStatus int
		proxyMissing   bool
	}{
		{
			name: "success",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req models.GenerateRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "make me a plan", req.Prompt)

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"content":"{\"overview\":{}}"}`))
			},
			expectedResult: `{"overview":{}}`,
		},
		{
			name: "html_page_instead_of_api",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write([]byte("<html>not found</html>"))
			},
			expectedError:  ProxyUnavailableMessage,
			expectedStatus: http.StatusOK,
			proxyMissing:   true,
		},
		{
			name: "error_with_message",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit reached"}`))
			},
			expectedError:  "Rate limit reached",
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name: "error_without_message",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{}`))
			},
			expectedError:  GenerationFailedMessage,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid_json_body",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"content":`))
			},
			expectedError:  GenerationFailedMessage,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			c := New(server.URL, time.Second, logger.NewNop())
			result, err := c.Generate(context.Background(), "make me a plan")

			if tt.expectedError != "" {
				require.Error(t, err)
				var transportErr *TransportError
				require.True(t, errors.As(err, &transportErr))
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Equal(t, tt.expectedStatus, transportErr.StatusCode)
				assert.Equal(t, tt.proxyMissing, errors.Is(err, ErrProxyUnavailable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	c := New(endpoint, time.Second, logger.NewNop())
	_, err := c.Generate(context.Background(), "prompt")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, GenerationFailedMessage, err.Error())
	assert.Zero(t, transportErr.StatusCode)
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.URL, 5*time.Second, logger.NewNop())
	_, err := c.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
}
