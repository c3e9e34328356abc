package embeddings

import (
	"context"
	"errors"
	"time"

	"github.com/peerlink/matchmaker/internal/metrics"
)

type instrumented struct {
	name string
	next Provider
}

// WithMetrics records call counts and latency of p under the provider label name.
func WithMetrics(p Provider, name string) Provider {
	return &instrumented{name: name, next: p}
}

func (i *instrumented) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := i.next.Embed(ctx, text)

	outcome := "ok"
	switch {
	case errors.Is(err, ErrEmptyInput):
		outcome = "empty_input"
	case err != nil:
		outcome = "error"
	default:
		metrics.EmbedLatency.WithLabelValues(i.name).Observe(time.Since(start).Seconds())
	}
	metrics.EmbedRequests.WithLabelValues(i.name, outcome).Inc()
	return vec, err
}
