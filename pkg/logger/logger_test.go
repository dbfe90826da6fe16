package logger

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

func TestInitWithWriter_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("admin-service", "debug", &buf)

	Info().Str("entity", "coupon").Msg("created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin-service", entry["service"])
	assert.Equal(t, "coupon", entry["entity"])
	assert.Equal(t, "info", entry["level"])
}

func TestInitWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("admin-service", "verbose", &buf)

	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Info().Msg("shown")
	assert.NotEmpty(t, buf.String())
}

func TestGinLoggerMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	InitWithWriter("admin-service", "info", &buf)

	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"path":"/ping"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
