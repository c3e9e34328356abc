package embeddings

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/health"
)

const probeText = "health-check"

// NewHealthChecker monitors p. Providers implementing health.HealthPinger are
// probed with HealthPing; others with a short Embed call.
func NewHealthChecker(p Provider, log zerolog.Logger, probeTimeout time.Duration) *health.ComponentChecker {
	return health.NewComponentChecker("embedder", pinger(p), log, probeTimeout)
}

func pinger(p Provider) health.HealthPinger {
	if hp, ok := p.(health.HealthPinger); ok {
		return hp
	}
	return health.PingFunc(func(ctx context.Context) error {
		_, err := p.Embed(ctx, probeText)
		return err
	})
}
