package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corvus_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corvus_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corvus_sessions_created_total",
			Help: "Sessions issued by login and registration.",
		},
	)

	SessionsExpiredSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corvus_sessions_swept_total",
			Help: "Expired sessions removed by the cleanup sweep.",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, SessionsCreated, SessionsExpiredSwept)
}

// Handler exposes the Prometheus registry as a Fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
