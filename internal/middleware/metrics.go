package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	metricsOnce sync.Once
	metrics     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register globally, so repeated calls (tests
// building several servers) reuse the first instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	metricsOnce.Do(func() {
		metrics = fiberprometheus.New(serviceName)
	})
	return metrics
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
