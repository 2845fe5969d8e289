// Package main is the catalog sync API server.
//
//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler,../../internal/interfaces/http/dto,../../internal/domain/integration,../../internal/application/integration,../../internal/infrastructure/scheduler -o ../../docs --v3.1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/catalogsync/backend/docs"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title						Catalog Sync API
//	@version					1.0
//	@description				Product catalog synchronization between Shopify and WooCommerce through a canonical product model.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Service token, formatted as "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.FromAppConfig(cfg.App, cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	// Telemetry first so the bridged logger is used everywhere else
	tel, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer tel.shutdown(context.Background())
	log = tel.logger

	log.Info("Starting catalog sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)

	// Initialize database connection with custom logger
	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.InstrumentDB(db.DB, telemetry.DBConfig{
		Tracing:            cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, tel.meter, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	if err := migrateDatabase(db, log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Sync stack: repositories, mapping cache, platform registry, services
	stack, err := buildSyncStack(ctx, cfg, db, tel.meter, log)
	if err != nil {
		log.Fatal("Failed to build sync stack", zap.Error(err))
	}
	defer stack.close()

	log.Info("Platforms configured", zap.Stringers("platforms", stack.syncService.Platforms()))

	// Scheduled full-catalog syncs
	jobs, err := startJobs(ctx, cfg, stack, log)
	if err != nil {
		log.Fatal("Failed to start catalog sync scheduler", zap.Error(err))
	}
	defer jobs.stop(context.Background())

	snapshots, err := buildSnapshots(ctx, cfg.Storage, stack.store, log)
	if err != nil {
		log.Fatal("Failed to set up catalog snapshots", zap.Error(err))
	}

	authn, err := buildAuth(cfg, log)
	if err != nil {
		log.Fatal("Failed to set up service authentication", zap.Error(err))
	}
	defer func() {
		if err := authn.closer(); err != nil {
			log.Error("Error closing revocation list", zap.Error(err))
		}
	}()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine, rateLimiter := newEngine(cfg, tel, log)
	if rateLimiter != nil {
		defer rateLimiter.Stop()
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", handler.NewHealthHandler(stack.healthChecks(db)...).Health)

	// API documentation, guarded like the API itself
	registerDocs(engine, cfg.Swagger, authn.middleware)

	// Setup API routes using router
	var jobScheduler handler.JobScheduler
	if jobs.scheduler != nil {
		jobScheduler = jobs.scheduler
	}
	var snapshotService handler.SnapshotService
	if snapshots != nil {
		snapshotService = snapshots
	}
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.SyncRoutes(
		handler.NewSyncHandler(stack.syncService, stack.mappingService),
		handler.NewMappingHandler(stack.mappingService),
		handler.NewJobHandler(jobScheduler),
		handler.NewSnapshotHandler(snapshotService),
	).Use(authn.middleware...)).Register(handler.SystemRoutes(handler.NewSystemHandler(cfg.App.Name, version, handler.Features{
		Scheduler:   jobScheduler != nil,
		Snapshots:   snapshotService != nil,
		ServiceAuth: len(authn.middleware) > 0,
	})))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// registerDocs serves the generated OpenAPI document and Swagger UI
func registerDocs(engine *gin.Engine, cfg config.SwaggerConfig, authChain []gin.HandlerFunc) {
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Enabled,
			RequireAuth: cfg.RequireAuth,
			AllowedIPs:  cfg.AllowedIPs,
		}, authChain...),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
}

// newEngine builds the gin engine with the middleware stack applied in order:
//  1. RequestID - Generate/propagate request ID
//  2. Tracing - Server span, request attributes, error status
//  3. Recovery - Catch panics
//  4. Logger - Log requests
//  5. Metrics and profiling labels
//  6. Security - Add security headers
//  7. CORS - Handle cross-origin requests
//  8. BodyLimit - Limit request body size
//  9. RateLimit - Apply rate limiting (if enabled)
func newEngine(cfg *config.Config, tel *telemetryStack, log *zap.Logger) (*gin.Engine, *middleware.RateLimiter) {
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health"},
	})...)
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, logger.WithSkipPaths("/health")))
	engine.Use(middleware.HTTPMetricsWithMeter(tel.meter, cfg.Telemetry.MetricsEnabled))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: []string{"/health"},
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if !cfg.HTTP.RateLimitEnabled {
		return engine, nil
	}
	rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	engine.Use(middleware.RateLimit(rateLimiter))
	log.Info("Rate limiting enabled",
		zap.Int("requests", cfg.HTTP.RateLimitRequests),
		zap.Duration("window", cfg.HTTP.RateLimitWindow),
	)
	return engine, rateLimiter
}
