package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoggerMiddleware_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "exam-service")

	router := gin.New()
	router.Use(ContextLogger(logger), LoggerMiddleware(logger))
	router.GET("/ok", func(c *gin.Context) {
		GetLoggerFromContext(c, nil).Info("inside handler")
		c.Status(http.StatusOK)
	})
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, path := range []string{"/ok", "/fail"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Request-ID", "req-1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	var records []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		records = append(records, record)
	}
	require.Len(t, records, 3)

	assert.Equal(t, "inside handler", records[0]["msg"])
	assert.Equal(t, "req-1", records[0]["request_id"])
	assert.Equal(t, "exam-service", records[0]["service"])

	assert.Equal(t, "INFO", records[1]["level"])
	assert.Equal(t, float64(http.StatusOK), records[1]["status_code"])

	assert.Equal(t, "ERROR", records[2]["level"])
	assert.Equal(t, "/fail", records[2]["path"])
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	fallback := newLogger(&bytes.Buffer{}, "development", "course-service")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Same(t, fallback, GetLoggerFromContext(c, fallback))
	assert.NotNil(t, ToSlogLogger(fallback))
}
