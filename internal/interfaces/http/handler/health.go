package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Component states reported by /health
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// HealthCheck checks one dependency. A nil Check reports the component as
// disabled. Optional components do not make the service unhealthy.
type HealthCheck struct {
	Name     string
	Check    func(ctx context.Context) error
	Optional bool
}

// HealthHandler reports service and dependency health
type HealthHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	timeout   time.Duration
	checks    []HealthCheck
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
		timeout:   2 * time.Second,
		checks:    checks,
	}
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	GoVersion  string            `json:"go_version"`
	Uptime     string            `json:"uptime"`
	Time       string            `json:"time"`
	Components map[string]string `json:"components"`
}

// Health runs every check and answers 503 when a required one fails
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Time:       time.Now().Format(time.RFC3339),
		Components: make(map[string]string, len(h.checks)),
	}

	status := http.StatusOK
	for _, chk := range h.checks {
		if chk.Check == nil {
			resp.Components[chk.Name] = StatusDisabled
			continue
		}
		if err := chk.Check(ctx); err != nil {
			logger.FromContext(c.Request.Context()).Warn("Health check failed",
				zap.String("component", chk.Name),
				zap.Error(err),
			)
			resp.Components[chk.Name] = StatusError
			if !chk.Optional {
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			} else if resp.Status == "healthy" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Components[chk.Name] = StatusOK
	}

	c.JSON(status, resp)
}
