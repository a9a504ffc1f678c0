package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewMetrics("exam-service")

	m.AttemptCreated()
	m.AttemptCreated()
	m.AttemptRejected("retry_limit")
	m.AttemptGraded(4)
	m.CacheLookup("statistics", true)
	m.CacheLookup("statistics", false)
	m.CacheLookup("statistics", false)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AttemptsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsRejected.WithLabelValues("retry_limit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsGraded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheRequests.WithLabelValues("statistics", "hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheRequests.WithLabelValues("statistics", "miss")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AttemptCreated()
		m.AttemptRejected("window")
		m.AttemptGraded(10)
		m.CacheLookup("authz", true)
	})
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("course-service")

	router := gin.New()
	router.Use(m.MetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", m.PrometheusHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "exam_attempts_created_total")
	assert.Contains(t, w.Body.String(), `service="course-service"`)
}
