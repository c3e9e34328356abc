package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/health"
	"github.com/peerlink/matchmaker/internal/model"
)

const healthProbeID = "__health_check__"

// NewHealthChecker monitors s. Stores implementing health.HealthPinger are
// pinged directly; otherwise a profile lookup proves the store responds.
func NewHealthChecker(s Store, log zerolog.Logger, probeTimeout time.Duration) *health.ComponentChecker {
	return health.NewComponentChecker("store", pinger(s), log, probeTimeout)
}

func pinger(s Store) health.HealthPinger {
	if p, ok := s.(health.HealthPinger); ok {
		return p
	}
	return health.PingFunc(func(ctx context.Context) error {
		_, err := s.Profiles().Get(ctx, healthProbeID)
		if err == nil || errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	})
}
