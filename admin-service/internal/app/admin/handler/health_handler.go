package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker проверяет одну внешнюю зависимость (postgres, redis, REST API)
type Checker func(ctx context.Context) error

type HealthCheckHandler struct {
	checks map[string]Checker
}

func NewHealthCheckHandler(checks map[string]Checker) *HealthCheckHandler {
	if checks == nil {
		checks = map[string]Checker{}
	}
	return &HealthCheckHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthCheck обрабатывает GET /health
// Опрашивает все зависимости; любая недоступная даёт 503
func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	overallStatus := "ok"

	for _, name := range h.names() {
		if err := h.checks[name](ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			checks[name] = "healthy"
		}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:    overallStatus,
		Service:   serviceName,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

// Readiness обрабатывает GET /health/readiness
func (h *HealthCheckHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	for _, name := range h.names() {
		if err := h.checks[name](ctx); err != nil {
			c.String(http.StatusServiceUnavailable, name+" not ready")
			return
		}
	}

	c.String(http.StatusOK, "ready")
}

// Liveness обрабатывает GET /health/liveness
func (h *HealthCheckHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}

func (h *HealthCheckHandler) names() []string {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
