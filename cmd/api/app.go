package main

import (
	"context"
	"net/http"
	"time"

	"property-dashboard/internal/dashboard"
	"property-dashboard/internal/handlers"
	"property-dashboard/internal/middleware"
	"property-dashboard/internal/services"
	"property-dashboard/internal/transformers"
	"property-dashboard/internal/validators"
	"property-dashboard/pkg/config"
	"property-dashboard/pkg/listings"
	"property-dashboard/pkg/logger"
	"property-dashboard/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config            *config.Config
	Router            *gin.Engine
	Source            listings.Source
	Sessions          *dashboard.Store
	PropertiesHandler *handlers.PropertiesHandler
	DashboardHandler  *handlers.DashboardHandler
	RateLimiter       *middleware.RateLimiter
	Server            *http.Server

	stopBackground context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.stopBackground = cancel

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeSource()
	app.initializeSessions(ctx)
	app.initializeRateLimiter(ctx)

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the listings source: a local fixture when configured, otherwise
// the provider API, behind a circuit breaker unless disabled
func (a *App) initializeSource() {
	cfg := a.Config

	if cfg.Upstream.FixturePath != "" {
		logger.GlobalLogger.Printf("Serving listings from fixture %s", cfg.Upstream.FixturePath)
		a.Source = listings.NewFixtureSource(cfg.Upstream.FixturePath)
	} else {
		logger.GlobalLogger.Printf("Serving listings from %s", cfg.Upstream.BaseURL)
		a.Source = listings.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.UpstreamTimeout())
	}

	if cfg.Breaker.Disabled {
		return
	}
	a.Source = listings.NewBreakerSource(a.Source, listings.BreakerSettings{
		Name:             "listings-api",
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         time.Duration(cfg.Breaker.IntervalSeconds) * time.Second,
		Timeout:          time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	})
}

// initialize the dashboard session store and its eviction loop
func (a *App) initializeSessions(ctx context.Context) {
	ttl := a.Config.SessionTTL()
	a.Sessions = dashboard.NewStore(ttl)

	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go a.Sessions.RunCleanup(ctx, interval)
}

// initialize the rate limiter
func (a *App) initializeRateLimiter(ctx context.Context) {
	perSecond := rate.Limit(a.Config.RateLimit.RequestsPerMinute / 60.0)
	a.RateLimiter = middleware.NewRateLimiter(perSecond, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(ctx, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// transformers
	listingTrans := transformers.NewListingTransformer()

	// validators
	searchValidator := validators.NewSearchValidator()

	// services
	listingService := services.NewListingService(a.Source, searchValidator)
	dashboardService := services.NewDashboardService(listingService, listingTrans, a.Sessions)

	// handlers
	a.PropertiesHandler = handlers.NewPropertiesHandler(listingService)
	a.DashboardHandler = handlers.NewDashboardHandler(dashboardService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.stopBackground != nil {
		a.stopBackground()
	}
}
