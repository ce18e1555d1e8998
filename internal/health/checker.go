package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/coursechat/backend/internal/database"
	"github.com/sirupsen/logrus"
)

// HealthChecker manages health checks for all dependencies
type HealthChecker struct {
	dbManager *database.Manager
	logger    *logrus.Logger
	engineURL string
}

func NewHealthChecker(dbManager *database.Manager, logger *logrus.Logger, engineURL string) *HealthChecker {
	return &HealthChecker{
		dbManager: dbManager,
		logger:    logger,
		engineURL: engineURL,
	}
}

// ServiceHealth represents the health status of a dependency
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckPostgreSQL checks PostgreSQL database health
func (h *HealthChecker) CheckPostgreSQL() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingDatabase()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("PostgreSQL health check failed")
	}

	return ServiceHealth{
		Name:         "postgresql",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckRedis checks Redis health
func (h *HealthChecker) CheckRedis() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingRedis()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Redis health check failed")
	}

	return ServiceHealth{
		Name:         "redis",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckEngine checks the answer engine's health endpoint
func (h *HealthChecker) CheckEngine() ServiceHealth {
	start := time.Now()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(h.engineURL + "/health")

	responseTime := int(time.Since(start).Milliseconds())
	status := "healthy"
	errorMsg := ""

	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
	} else {
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			status = "unhealthy"
			errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}

	if status != "healthy" {
		h.logger.WithError(err).Error("Engine health check failed")
	}

	return ServiceHealth{
		Name:         "engine",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all dependencies
func (h *HealthChecker) CheckAll() OverallHealth {
	services := []ServiceHealth{
		h.CheckPostgreSQL(),
		h.CheckRedis(),
		h.CheckEngine(),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   h.getUptime(),
	}
}

var startTime = time.Now()

func (h *HealthChecker) getUptime() string {
	return time.Since(startTime).String()
}
