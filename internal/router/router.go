package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/handler"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger zerolog.Logger,
	allowedOrigins []string,
	parseH *handler.ParseHandler,
	interpretH *handler.InterpretHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/", healthH.Root)

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.GET("/health", healthH.Liveness)
	v1.GET("/stats", statsH.GetStats)

	v1.POST("/parse", parseH.Parse)
	v1.POST("/parse/export", parseH.Export)
	v1.POST("/interpret", interpretH.Interpret)

	return r
}
