package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// ClassifierProber reports whether the hosted classifier still answers.
type ClassifierProber interface {
	HealthCheck() bool
}

// MonitorClassifierHealth probes the classifier provider on a fixed
// interval and publishes the result for the health endpoint. Unhealthy
// providers only affect reporting; requests keep degrading locally.
func MonitorClassifierHealth(ctx context.Context, prober ClassifierProber, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := prober.HealthCheck()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Sentiment classifier is unhealthy")
			}
		}
	}
}
