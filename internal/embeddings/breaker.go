package embeddings

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

type breakerProvider struct {
	name string
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker opens a circuit after maxFailures consecutive provider failures
// and rejects calls for openFor before letting a single probe through.
// maxFailures <= 0 returns p unchanged.
func WithBreaker(p Provider, name string, maxFailures int, openFor time.Duration, log zerolog.Logger) Provider {
	if maxFailures <= 0 {
		return p
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("embedding circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrEmptyInput) || errors.Is(err, context.Canceled)
		},
	}
	return &breakerProvider{name: name, next: p, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Embed(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewError(b.name, err)
		}
		return nil, err
	}
	return res.([]float32), nil
}
