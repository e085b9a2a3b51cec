package routes

import (
	"github.com/01moynul/paper-graph-api/internal/handlers"
	"github.com/01moynul/paper-graph-api/internal/metrics"
	"github.com/01moynul/paper-graph-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries the router's non-handler dependencies. A nil Metrics
// disables request metrics and leaves /metrics unmounted.
type Options struct {
	AllowedOrigin string
	Metrics       *metrics.Collector
	Logger        *zap.Logger
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()

	// Unknown methods on known paths get 405 instead of 404.
	router.HandleMethodNotAllowed = true

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Metrics(opts.Metrics),
		middleware.CORSMiddleware(opts.AllowedOrigin),
	)

	// --- Probes ---
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := router.Group("/api")
	{
		// --- Graph Routes (Public, Read-Only) ---
		api.GET("/edges", h.GetEdges)
		api.GET("/nodes", h.GetNodes)
		api.GET("/papers", h.GetPapers)
		api.GET("/metadata", h.GetMetadata)

		// --- Dashboard ---
		api.GET("/stats", h.GetStats)
	}

	return router
}
