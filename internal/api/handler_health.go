package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRoot greets API clients.
func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.appName + " API",
		"version": Version,
	})
}

// GetHealth is the liveness probe.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
