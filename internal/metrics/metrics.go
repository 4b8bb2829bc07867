package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forkful_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	recipesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_recipes_created_total",
		Help: "Total number of recipes created",
	})

	usersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_users_registered_total",
		Help: "Total number of users registered",
	})
)

// Middleware records a counter and latency histogram per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncrementRecipesCreated increments the recipes created counter by 1.
func IncrementRecipesCreated() {
	recipesCreatedTotal.Inc()
}

// IncrementUsersRegistered increments the registered users counter by 1.
func IncrementUsersRegistered() {
	usersRegisteredTotal.Inc()
}
