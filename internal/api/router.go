package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/dbpool"
	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Buyers      domain.BuyerService
	History     domain.HistoryService
	Importer    domain.ImportService
	Exporter    domain.ExportService
	Stats       domain.StatsService
	Audit       domain.AuditService
	ActorLookup middleware.ActorLookup
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	buyers := NewBuyerHandler(deps.Buyers, log)
	history := NewHistoryHandler(deps.History, log)
	importExport := NewImportExportHandler(deps.Importer, deps.Exporter, log)
	stats := NewStatsHandler(deps.Stats, log)
	audit := NewAuditHandler(deps.Audit, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	bfGuard := middleware.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(bfGuard))
	api.Use(middleware.AuthMiddleware(middleware.NewCachedActorLookup(ctx, deps.ActorLookup), log, bfGuard))

	// Buyers.
	api.GET("/buyers", buyers.List)
	api.POST("/buyers", buyers.Create)
	api.POST("/buyers/import", importExport.Import)
	api.GET("/buyers/export", importExport.Export)
	api.GET("/buyers/:id", buyers.Get)
	api.PUT("/buyers/:id", buyers.Update)
	api.DELETE("/buyers/:id", buyers.Delete)
	api.GET("/buyers/:id/can-edit", buyers.CanEdit)
	api.GET("/buyers/:id/history", history.GetHistory)

	// Audit.
	api.GET("/audit", audit.Query)

	// Stats.
	api.GET("/stats", stats.GetStats)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
