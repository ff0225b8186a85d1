package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-dashboard/internal/models"
	"property-dashboard/internal/services"
	"property-dashboard/pkg/listings"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func searchRequest(c *gin.Context) *models.SearchRequest {
	return &models.SearchRequest{
		Suburb:       c.Query("suburb"),
		PropertyType: c.DefaultQuery("property_type", "house"),
	}
}

func listingIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, &listings.ValidationError{Field: "index", Message: "listing index must be an integer"}
	}
	return index, nil
}

// GetDashboard godoc
// @Summary Build a dashboard
// @Description Searches, normalizes and renders statistics, charts and the listing table in one call
// @Tags Dashboard
// @Produce json
// @Param suburb query string true "Suburb name"
// @Param property_type query string false "Property type" default(house)
// @Param sort query string false "Sort field" Enums(price, land_size, price_per_area, bedrooms, bathrooms, garage_spaces, listing_date, area_name, property_type, description)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(asc)
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view, err := h.dashboardService.Build(c.Request.Context(), searchRequest(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateSession godoc
// @Summary Start a dashboard session
// @Tags Sessions
// @Produce json
// @Success 201 {object} models.SessionResponse
// @Router /sessions [post]
func (h *DashboardHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, models.SessionResponse{SessionID: h.dashboardService.CreateSession()})
}

// GetSession godoc
// @Summary Render a dashboard session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.DashboardView
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id} [get]
func (h *DashboardHandler) GetSession(c *gin.Context) {
	view, err := h.dashboardService.View(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteSession godoc
// @Summary End a dashboard session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *DashboardHandler) DeleteSession(c *gin.Context) {
	if err := h.dashboardService.DeleteSession(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchSession godoc
// @Summary Run a search in a session
// @Description Replaces the session's listing set. Results of a search superseded by a newer one are discarded with 409.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param suburb query string true "Suburb name"
// @Param property_type query string false "Property type" default(house)
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /sessions/{id}/search [post]
func (h *DashboardHandler) SearchSession(c *gin.Context) {
	view, err := h.dashboardService.Search(c.Request.Context(), c.Param("id"), searchRequest(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SortSession godoc
// @Summary Sort the session's listing table
// @Description Selecting a new field sorts ascending; selecting the active field again flips the direction
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param field query string true "Sort field"
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id}/sort [post]
func (h *DashboardHandler) SortSession(c *gin.Context) {
	view, err := h.dashboardService.Sort(c.Param("id"), c.Query("field"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleListing godoc
// @Summary Expand or collapse a listing's detail row
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Listing index"
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id}/listings/{index}/toggle [post]
func (h *DashboardHandler) ToggleListing(c *gin.Context) {
	index, err := listingIndex(c)
	if err != nil {
		c.Error(err)
		return
	}
	view, err := h.dashboardService.ToggleDetail(c.Param("id"), index)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetListing godoc
// @Summary Get a listing's detail view
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Listing index"
// @Success 200 {object} models.ListingDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id}/listings/{index} [get]
func (h *DashboardHandler) GetListing(c *gin.Context) {
	index, err := listingIndex(c)
	if err != nil {
		c.Error(err)
		return
	}
	detail, err := h.dashboardService.Detail(c.Param("id"), index)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
