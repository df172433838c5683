package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/app"
	"shipping-management/internal/delivery/http/handler"
	"shipping-management/internal/logger"
	"shipping-management/internal/middleware"
)

func SetupRoutes(c *app.Container) *gin.Engine {
	cfg := c.Config
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.Repos.Health(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userHandler := handler.NewUserHandler(c.Users)
	shipmentHandler := handler.NewShipmentHandler(c.Shipments)
	dispatchHandler := handler.NewDispatchHandler(c.Dispatch, c.Shipments)
	carrierHandler := handler.NewCarrierHandler(c.Carriers)
	collaboratorHandler := handler.NewCollaboratorHandler(c.Collaborator)
	analyticsHandler := handler.NewAnalyticsHandler(c.Analytics)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			shipmentHandler.RegisterRoutes(protected)
			carrierHandler.RegisterRoutes(protected)
			collaboratorHandler.RegisterRoutes(protected)
			analyticsHandler.RegisterRoutes(protected)

			dispatchers := protected.Group("")
			dispatchers.Use(middleware.Dispatchers())
			{
				shipmentHandler.RegisterDispatcherRoutes(dispatchers)
				dispatchHandler.RegisterRoutes(dispatchers)
			}

			managers := protected.Group("")
			managers.Use(middleware.CarrierManagers())
			{
				carrierHandler.RegisterManagerRoutes(managers)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
