package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const monitoringKeyHeader = "X-Monitoring-Key"

func (h *Handler) requireMonitoringKey(c *gin.Context) {
	expected := strings.TrimSpace(h.monitoringKey)
	if expected == "" || h.monitor == nil {
		fail(c, http.StatusServiceUnavailable, "Monitoring API is disabled")
		return
	}

	provided := strings.TrimSpace(c.GetHeader(monitoringKeyHeader))
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		fail(c, http.StatusUnauthorized, "Invalid monitoring key")
		return
	}
	c.Next()
}

func (h *Handler) MonitorStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.StatusText(c.Request.Context())})
}

func (h *Handler) MonitorSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Snapshot(c.Request.Context()))
}
