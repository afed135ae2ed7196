package handlers

import (
	"net/http"

	"github.com/SscSPs/stock_exchange_app/cmd/docs"
	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
	"github.com/SscSPs/stock_exchange_app/internal/platform/config"
	"github.com/SscSPs/stock_exchange_app/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps are the collaborators the routes are built from besides the services.
type RouteDeps struct {
	Formatter     i18n.Formatter
	Authenticator *middleware.BasicAuthenticator
	Metrics       http.Handler     // serves /metrics when set
	Limiter       *limiter.Limiter // limits /api when set
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) error {
	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	setupAPIV1Routes(r, services, deps)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, deps RouteDeps) {
	api := r.Group("/api", middleware.LocaleMiddleware(deps.Formatter))
	if deps.Limiter != nil {
		api.Use(middleware.RateLimit(deps.Limiter))
	}
	api.Use(deps.Authenticator.Authenticate(), deps.Authenticator.AuthorizeAPI())

	v1 := api.Group("/v1")
	errs := newErrorResponder(deps.Formatter)
	registerStockRoutes(v1, services.Stock, errs)
	registerExchangeRoutes(v1, services.Exchange, errs)
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
