package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "ok",
		"message":   "Catalog is running",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if h.jobs != nil {
		body["scheduler"] = h.jobs.Status()
	}

	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		slog.Warn("Storage ping failed", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["message"] = "Storage is unreachable"
	}

	c.JSON(status, body)
}
