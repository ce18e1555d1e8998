package handlers

import (
	"net/http"

	"github.com/coursechat/backend/internal/health"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleHealth reports per-dependency health; 503 when anything is down.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll()

	statusCode := http.StatusOK
	if overall.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, overall)
}
