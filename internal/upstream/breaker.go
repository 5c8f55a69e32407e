package upstream

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/bizmatters/healthpath/internal/logger"
)

// newBreaker trips after repeated provider failures. Requests rejected by an
// open breaker never reach the provider.
func newBreaker(name string, log *logger.Logger) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		// client mistakes say nothing about provider health
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var upErr *UpstreamError
			if errors.As(err, &upErr) {
				return upErr.StatusCode >= 400 && upErr.StatusCode < 500 && upErr.StatusCode != http.StatusTooManyRequests
			}
			return false
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker changed state", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// execute runs call through the breaker, mapping a rejection to a 503
func execute(cb *gobreaker.CircuitBreaker, call func() (string, error)) (string, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &UpstreamError{
				StatusCode: http.StatusServiceUnavailable,
				Message:    "Model provider is temporarily unavailable. Please try again shortly.",
				Err:        err,
			}
		}
		return "", err
	}
	return result.(string), nil
}
