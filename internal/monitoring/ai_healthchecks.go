package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// HealthChecker is a remote dependency that can report its own health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorModelHealth probes checker immediately and then every
// HEALTHCHECK_TIMER seconds, publishing the outcome to healthy.
func MonitorModelHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool) {
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		isHealthy := checker.HealthCheck(probeCtx)
		if was := healthy.Swap(isHealthy); was != isHealthy {
			slog.Info("[HealthCheck] Sentiment model health changed",
				slog.Bool("healthy", isHealthy))
		}
		if !isHealthy {
			slog.Warn("[HealthCheck] Sentiment model is unhealthy")
		}
	}

	probe()

	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
