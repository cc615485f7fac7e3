package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promMu        sync.Mutex
	promByService = map[string]*fiberprometheus.FiberPrometheus{}
)

// InitMetrics returns the Prometheus middleware for the given service name.
// Instances are cached per service: fiberprometheus registers collectors on
// the default registry, and registering the same service twice panics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promMu.Lock()
	defer promMu.Unlock()

	if prom, ok := promByService[serviceName]; ok {
		return prom
	}
	prom := fiberprometheus.New(serviceName)
	promByService[serviceName] = prom
	return prom
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
