package planner

import (
	"context"
	"time"
)

// LoadingMessages rotate on the loading screen while a plan is generated
var LoadingMessages = []string{
	"Analyzing your profile...",
	"Calculating nutritional needs...",
	"Designing workout routines...",
	"Creating meal plans...",
	"Optimizing sleep schedule...",
	"Selecting home equipment...",
	"Finalizing your personalized plan...",
}

// DefaultStatusInterval is the time between loading messages
const DefaultStatusInterval = 2 * time.Second

// StatusRotator cycles through a fixed list of status messages
type StatusRotator struct {
	messages []string
	interval time.Duration
}

func NewStatusRotator(messages []string, interval time.Duration) *StatusRotator {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	return &StatusRotator{messages: messages, interval: interval}
}

// Run emits the first message immediately and the next one on every tick,
// wrapping around, until stop is closed or ctx is done.
func (r *StatusRotator) Run(ctx context.Context, stop <-chan struct{}, emit func(string)) {
	if len(r.messages) == 0 || emit == nil {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	i := 0
	emit(r.messages[i])
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			i = (i + 1) % len(r.messages)
			emit(r.messages[i])
		}
	}
}
