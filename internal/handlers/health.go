package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-dashboard/internal/models"
)

const ServiceName = "property-dashboard"

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy", Service: ServiceName})
}
