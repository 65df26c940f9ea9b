package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported at /metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UsersRegisteredTotal prometheus.Counter
	LoginsTotal          *prometheus.CounterVec
	PostsCreatedTotal    *prometheus.CounterVec
	LikesTotal           *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the singleton metrics registry
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			}, []string{"method", "route", "status"}),

			HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "route", "status"}),

			UsersRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total successful registrations",
			}),

			LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "logins_total",
				Help: "Total login attempts by outcome",
			}, []string{"outcome"}),

			PostsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "posts_created_total",
				Help: "Total posts created, by kind (original or share)",
			}, []string{"kind"}),

			LikesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "post_likes_total",
				Help: "Total like and unlike operations",
			}, []string{"action"}),
		}
	})
	return instance
}
