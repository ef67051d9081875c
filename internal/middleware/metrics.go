package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ripple_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// LikeToggles counts like toggles by outcome (liked/unliked).
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ripple_like_toggles_total",
	Help: "Total number of like toggles by resulting state",
}, []string{"state"})

// MediaUploads counts accepted media uploads by kind.
var MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ripple_media_uploads_total",
	Help: "Total number of stored media uploads by kind",
}, []string{"kind"})

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The underlying collectors live in the default registry, so the
// instance is created once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware returns the request-instrumentation handler for the app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
