package main

import (
	"net/http"
	_ "net/http/pprof"

	_ "property-dashboard/docs"
	"property-dashboard/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.Router.GET("/health", handlers.Health)
	a.setupAPIRoutes()
}

// setupStaticRoutes configures documentation and diagnostics
func (a *App) setupStaticRoutes() {
	// Serve Swagger UI
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Expose pprof profiling endpoints (disable in production)
	if !a.Config.IsProduction() {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		api.GET("/properties", a.PropertiesHandler.GetProperties)
		api.GET("/dashboard", a.DashboardHandler.GetDashboard)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", a.DashboardHandler.CreateSession)
			sessions.GET("/:id", a.DashboardHandler.GetSession)
			sessions.DELETE("/:id", a.DashboardHandler.DeleteSession)
			sessions.POST("/:id/search", a.DashboardHandler.SearchSession)
			sessions.POST("/:id/sort", a.DashboardHandler.SortSession)
			sessions.POST("/:id/listings/:index/toggle", a.DashboardHandler.ToggleListing)
			sessions.GET("/:id/listings/:index", a.DashboardHandler.GetListing)
		}
	}
}
