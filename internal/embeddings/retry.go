package embeddings

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

type retryProvider struct {
	next       Provider
	attempts   int
	log        zerolog.Logger
	newBackOff func() backoff.BackOff
}

// WithRetry retries failed Embed calls up to attempts times in total with
// exponential backoff. Blank input and cancelled contexts are never retried.
// attempts <= 1 returns p unchanged.
func WithRetry(p Provider, attempts int, log zerolog.Logger) Provider {
	if attempts <= 1 {
		return p
	}
	return &retryProvider{
		next:     p,
		attempts: attempts,
		log:      log,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	attempt := 0
	op := func() error {
		attempt++
		v, err := r.next.Embed(ctx, text)
		if err == nil {
			vec = v
			return nil
		}
		if errors.Is(err, ErrEmptyInput) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.attempts-1)), ctx)
	err := backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		r.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("embed failed, retrying")
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}
