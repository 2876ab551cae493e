package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. The listing
// cache is best-effort, so failures surface here rather than in responses.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)

// CacheHits counts listing-cache lookups by outcome (hit or miss).
var CacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "inkwell_listing_cache_lookups_total",
		Help: "Listing cache lookups partitioned by outcome.",
	},
	[]string{"outcome"},
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register against the default registry, so the
// instance is created once and shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
