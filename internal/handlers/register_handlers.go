package handlers

import (
	"github.com/fintally/fintally_backend/cmd/docs"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/middleware"
	"github.com/fintally/fintally_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Every resource is scoped
// under the entity whose books it belongs to.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorResolutionMiddleware())

	entities := v1.Group("/entities/:entityID")
	registerAccountRoutes(entities, services.Account)
	registerMappingRoutes(entities, services.Mapping)
	RegisterTransactionRoutes(entities, services.Posting)
	RegisterJournalRoutes(entities, services.Posting)
	registerReportingRoutes(entities, services.Reporting, services.Tax)
	registerTaxConfigRoutes(entities, services.Tax)
	registerAssetRoutes(entities, services.Asset)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
