package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const defaultProbeTimeout = 2 * time.Second

// ComponentChecker polls one dependency through a HealthPinger and caches the
// result. It starts unhealthy until the first successful probe.
type ComponentChecker struct {
	name         string
	pinger       HealthPinger
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewComponentChecker(name string, p HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *ComponentChecker {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &ComponentChecker{name: name, pinger: p, log: log, probeTimeout: probeTimeout}
}

func (c *ComponentChecker) Name() string    { return c.name }
func (c *ComponentChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Check runs a single probe and updates the cached flag.
func (c *ComponentChecker) Check(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	err := c.pinger.HealthPing(checkCtx)
	if err != nil {
		if c.healthy.Swap(0) == 1 {
			c.log.Error().Stack().Str("checker", c.name).Err(err).Msg("health check failed")
		} else {
			c.log.Debug().Str("checker", c.name).Err(err).Msg("health check still failing")
		}
		return err
	}
	if c.healthy.Swap(1) == 0 {
		c.log.Info().Str("checker", c.name).Msg("health check recovered")
	}
	return nil
}

func (c *ComponentChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Check(ctx)
		}
	}
}
