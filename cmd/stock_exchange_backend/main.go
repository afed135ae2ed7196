package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/core/services"
	"github.com/SscSPs/stock_exchange_app/internal/handlers"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
	"github.com/SscSPs/stock_exchange_app/internal/platform/config"
	"github.com/SscSPs/stock_exchange_app/internal/platform/i18n"
	"github.com/SscSPs/stock_exchange_app/internal/platform/metrics"
	"github.com/SscSPs/stock_exchange_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/stock_exchange_app/internal/repositories/memory"
	"github.com/SscSPs/stock_exchange_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// @title Stock Exchange API
// @version 1.0
// @description Catalog of stocks and the stock exchanges listing them.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.basic BasicAuth

// @security BasicAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := setupStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	formatter, err := i18n.NewFormatter(cfg.DefaultLocale)
	if err != nil {
		logger.Error("Failed to load messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authenticator, err := middleware.NewBasicAuthenticator(cfg.Users, formatter, bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to set up authentication", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appMetrics := metrics.New()
	policies := services.RetryPoliciesFromConfig(cfg.Retry).Observed(appMetrics)
	serviceContainer := services.NewServiceContainer(repos, policies)

	deps := handlers.RouteDeps{
		Formatter:     formatter,
		Authenticator: authenticator,
		Metrics:       appMetrics.Handler(),
	}
	if cfg.RateLimit != "" {
		deps.Limiter, err = middleware.NewLimiter(cfg.RateLimit, cfg.RateLimitRedisURL)
		if err != nil {
			logger.Error("Failed to set up rate limiting", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, metrics, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(appMetrics),
		gin.Recovery(),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AddAllowHeaders("Authorization", "Accept-Language")
		corsCfg.AddExposeHeaders("X-Request-ID")
		r.Use(cors.New(corsCfg))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, deps); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage opens the configured Catalog Store. The returned cleanup releases it.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using the in-memory catalog; data is lost on restart")
		store := memory.NewStore(memory.WithSeedExchanges(memory.DefaultExchanges...))
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, database.WithMaxConns(cfg.DBMaxConns))
	if err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
