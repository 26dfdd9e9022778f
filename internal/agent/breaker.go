package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// breakerProvider stops calling a failing provider for a while so chat
// requests fail fast instead of waiting on every timeout.
type breakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

func WithBreaker(next Provider, name string, logger *slog.Logger) Provider {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 10 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit_breaker_state", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerProvider{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerProvider) Decide(ctx context.Context, conversation []Message) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Decide(ctx, conversation)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *breakerProvider) Finalize(ctx context.Context, conversation []Message, action Action, toolResult []byte) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Finalize(ctx, conversation, action, toolResult)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
