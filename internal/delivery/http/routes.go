package http

import (
	"github.com/gin-gonic/gin"

	"github.com/spoolscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/lookup", handler.Lookup)

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/:section", handler.ListSection)
		}

		mappings := v1.Group("/mappings")
		{
			mappings.GET("", handler.ListMappings)
			mappings.DELETE("/:id", handler.DeleteMapping)
		}
	}

	return router
}
