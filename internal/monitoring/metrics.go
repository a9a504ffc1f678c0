package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	AttemptsCreated  prometheus.Counter
	AttemptsRejected *prometheus.CounterVec
	AttemptsGraded   prometheus.Counter
	Grades           prometheus.Histogram
	CacheRequests    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry
// together with the Go runtime and process collectors.
func NewMetrics(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: labels,
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests",
				Buckets:     []float64{0.05, 0.1, 0.5, 1, 2, 5},
				ConstLabels: labels,
			},
			[]string{"method", "endpoint"},
		),
		AttemptsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "exam_attempts_created_total",
			Help:        "Total number of exam attempts created",
			ConstLabels: labels,
		}),
		AttemptsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "exam_attempts_rejected_total",
				Help:        "Attempt creations refused by the lifecycle policy",
				ConstLabels: labels,
			},
			[]string{"reason"},
		),
		AttemptsGraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "exam_attempts_graded_total",
			Help:        "Total number of exam attempts graded",
			ConstLabels: labels,
		}),
		Grades: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "exam_attempt_grade",
			Help:        "Distribution of attempt grades",
			Buckets:     prometheus.LinearBuckets(1, 1, 10),
			ConstLabels: labels,
		}),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "exam_cache_requests_total",
				Help:        "Cache lookups by cache and result",
				ConstLabels: labels,
			},
			[]string{"cache", "result"},
		),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.AttemptsCreated,
		m.AttemptsRejected,
		m.AttemptsGraded,
		m.Grades,
		m.CacheRequests,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) AttemptCreated() {
	if m == nil {
		return
	}
	m.AttemptsCreated.Inc()
}

func (m *Metrics) AttemptRejected(reason string) {
	if m == nil {
		return
	}
	m.AttemptsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) AttemptGraded(grade float64) {
	if m == nil {
		return
	}
	m.AttemptsGraded.Inc()
	m.Grades.Observe(grade)
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(cache, result).Inc()
}

// MetricsMiddleware records count and latency of every request
func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// PrometheusHandler serves the registry in the Prometheus exposition format
func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
