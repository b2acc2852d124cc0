package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/ai"
	"documind-backend/internal/analyses"
	"documind-backend/internal/config"
	"documind-backend/internal/shared/metrics"
	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config   config.Config
	Analyses *analyses.Handler
	AI       *ai.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
	)

	r.GET("/", banner)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})
	deps.Analyses.RegisterRoutes(api)
	deps.AI.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	return r
}

func banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "DocuMind AI - Smart Document Analyzer",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":         "/api/health",
			"analyze":        "POST /api/analyze",
			"getAnalysis":    "GET /api/analysis/:id",
			"getAllAnalyses": "GET /api/analyses",
			"askQuestion":    "POST /api/question",
			"focusedSummary": "POST /api/focused-summary",
			"resendEmail":    "POST /api/resend-email",
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
