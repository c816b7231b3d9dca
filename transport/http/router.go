package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/realtime"
	"github.com/cybermonitor-rd/sentinel/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(
	authService *service.AuthService,
	monitorService *service.MonitorService,
	registry *realtime.Registry,
	logger zerolog.Logger,
) *gin.Engine {
	router := gin.Default()

	handlers := NewHandlers(authService, monitorService)
	ws := NewWSHandler(registry, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/api/info", handlers.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", ws.Serve)

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/verify-mfa", handlers.VerifyMFA)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/incidents", handlers.Incidents)
		api.POST("/threats/detect", handlers.Detect)
		api.GET("/dashboard/stats", handlers.Stats)
	}

	return router
}
