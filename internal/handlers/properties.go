package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-dashboard/internal/models"
	"property-dashboard/internal/services"
)

type PropertiesHandler struct {
	listingService *services.ListingService
}

func NewPropertiesHandler(listingService *services.ListingService) *PropertiesHandler {
	return &PropertiesHandler{listingService: listingService}
}

// GetProperties godoc
// @Summary Search property listings
// @Description Forwards the query to the listings provider and returns its results with non-finite numbers replaced by null
// @Tags Properties
// @Produce json
// @Param suburb query string true "Suburb name"
// @Param property_type query string false "Property type" default(house)
// @Success 200 {object} models.ListingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /properties [get]
func (h *PropertiesHandler) GetProperties(c *gin.Context) {
	req := models.SearchRequest{
		Suburb:       c.Query("suburb"),
		PropertyType: c.DefaultQuery("property_type", "house"),
	}

	resp, err := h.listingService.Search(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
