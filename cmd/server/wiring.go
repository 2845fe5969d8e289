package main

import (
	"context"
	"fmt"
	"time"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/cache"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/migration"
	"github.com/catalogsync/backend/internal/infrastructure/pacing"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/infrastructure/storage"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/migrations"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "github.com/catalogsync/backend"

// ---------------------------------------------------------------------------
// Telemetry
// ---------------------------------------------------------------------------

type telemetryStack struct {
	tracer   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler

	meter  metric.Meter
	logger *zap.Logger
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*telemetryStack, error) {
	t := cfg.Telemetry
	s := &telemetryStack{logger: log}

	var err error
	s.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           t.ProfilingEnabled,
		ServerAddress:     t.ProfilingServerAddress,
		ApplicationName:   t.ServiceName,
		BasicAuthUser:     t.ProfilingBasicAuthUser,
		BasicAuthPassword: t.ProfilingBasicAuthPass,
		ProfileTypes:      t.ProfilingTypes,
	}, log)
	if err != nil {
		return nil, err
	}

	s.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		ServiceVersion:    version,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	if t.ProfilingSpanProfiles && s.profiler.IsEnabled() && s.tracer.IsEnabled() {
		s.tracer.EnableSpanProfiles()
	}

	s.meters, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           t.MetricsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ExportInterval:    t.MetricsExportInterval,
		ServiceName:       t.ServiceName,
		ServiceVersion:    version,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	s.meter = s.meters.Meter(meterName)

	s.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           t.LogsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		ServiceVersion:    version,
		Insecure:          t.Insecure,
		Level:             logger.ParseLevel(t.LogsLevel),
	}, log)
	if err != nil {
		return nil, err
	}
	s.logger = s.logs.Bridge(log)

	return s, nil
}

// shutdown flushes exporters in reverse start order
func (s *telemetryStack) shutdown(ctx context.Context) {
	if err := s.logs.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down logger provider", zap.Error(err))
	}
	if err := s.meters.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := s.tracer.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := s.profiler.Stop(); err != nil {
		s.logger.Error("Error stopping profiler", zap.Error(err))
	}
}

// ---------------------------------------------------------------------------
// Database
// ---------------------------------------------------------------------------

// migrateDatabase applies the embedded SQL migrations
func migrateDatabase(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.Open(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// Migrator.Close would also close sqlDB; the pool is closed with db.
	return m.Up()
}

// ---------------------------------------------------------------------------
// Sync stack
// ---------------------------------------------------------------------------

type syncStack struct {
	syncService    *appintegration.SyncService
	mappingService *appintegration.SyncMappingService
	store          integration.CanonicalProductStore
	mappingCache   cache.MappingCache
	log            *zap.Logger
}

func buildSyncStack(ctx context.Context, cfg *config.Config, db *persistence.Database, meter metric.Meter, log *zap.Logger) (*syncStack, error) {
	s := &syncStack{log: log}

	var mappings integration.SyncMappingRepository = persistence.NewGormSyncMappingRepository(db.DB)
	if cfg.Sync.MappingCacheEnabled {
		mappingCache, err := cache.OpenMappingCache(ctx, cfg.Redis, cache.OpenOptions{
			TTL:    cfg.Sync.MappingCacheTTL,
			Logger: log,
		})
		if err != nil {
			return nil, fmt.Errorf("mapping cache: %w", err)
		}
		s.mappingCache = mappingCache
		mappings = cache.NewCachedSyncMappingRepository(mappings, mappingCache, cfg.Sync.MappingCacheTTL, log)
	}
	store := persistence.NewGormCanonicalProductRepository(db.DB)
	s.store = store

	registry, err := ecommerce.NewDefaultRegistry(shopifyConfig(cfg.Shopify), wooCommerceConfig(cfg.WooCommerce))
	if err != nil {
		return nil, fmt.Errorf("platform registry: %w", err)
	}

	pacer, err := pacing.New(pacing.Config{
		Mode:  pacing.Mode(cfg.Sync.PacingMode),
		Delay: cfg.Sync.PacingDelay,
		QPS:   cfg.Sync.PacingQPS,
		Burst: cfg.Sync.PacingBurst,
	})
	if err != nil {
		return nil, err
	}

	syncMetrics, err := telemetry.NewSyncMetrics(meter, log)
	if err != nil {
		return nil, fmt.Errorf("sync metrics: %w", err)
	}

	s.syncService = appintegration.NewSyncService(registry, mappings, pacer, log.Named("sync"))
	s.syncService.SetConfig(appintegration.SyncServiceConfig{
		DefaultConcurrency: cfg.Sync.Concurrency,
		MaxConcurrency:     cfg.Sync.MaxConcurrency,
	})
	s.syncService.SetCanonicalStore(store)
	s.syncService.SetSyncMetrics(syncMetrics)
	s.mappingService = appintegration.NewSyncMappingService(mappings, store, log.Named("mappings"))
	return s, nil
}

func shopifyConfig(c config.ShopifyConfig) *ecommerce.ShopifyConfig {
	if !c.Enabled() {
		return nil
	}
	out := ecommerce.NewShopifyConfig(c.ShopDomain, c.AccessToken)
	if c.APIVersion != "" {
		out.APIVersion = c.APIVersion
	}
	if c.Timeout > 0 {
		out.Timeout = c.Timeout
	}
	return out
}

func wooCommerceConfig(c config.WooCommerceConfig) *ecommerce.WooCommerceConfig {
	if !c.Enabled() {
		return nil
	}
	out := ecommerce.NewWooCommerceConfig(c.BaseURL, c.ConsumerKey, c.ConsumerSecret)
	if c.WeightUnit != "" {
		out.WeightUnit = c.WeightUnit
	}
	if c.Timeout > 0 {
		out.Timeout = c.Timeout
	}
	return out
}

// healthChecks checks the database and, when it is Redis backed, the mapping cache
func (s *syncStack) healthChecks(db *persistence.Database) []handler.HealthCheck {
	checks := []handler.HealthCheck{{
		Name:  "database",
		Check: db.Ping,
	}}
	if p, ok := s.mappingCache.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: p.Ping})
	}
	return checks
}

func (s *syncStack) close() {
	if s.mappingCache == nil {
		return
	}
	if err := s.mappingCache.Close(); err != nil {
		s.log.Error("Error closing mapping cache", zap.Error(err))
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// buildSnapshots returns nil when no storage driver is configured
func buildSnapshots(
	ctx context.Context,
	cfg config.StorageConfig,
	store integration.CanonicalProductStore,
	log *zap.Logger,
) (*appintegration.SnapshotService, error) {
	var objects appintegration.ObjectStorage
	switch cfg.Driver {
	case "":
		log.Info("Catalog snapshots disabled: no storage driver configured")
		return nil, nil
	case "memory":
		m := storage.NewMemoryObjectStorage()
		if cfg.PresignExpiration > 0 {
			m.PresignExpiration = cfg.PresignExpiration
		}
		objects = m
	case "s3":
		s3, err := storage.NewS3Bucket(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("snapshot storage: %w", err)
		}
		ensureCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s3.EnsureExists(ensureCtx); err != nil {
			return nil, fmt.Errorf("snapshot bucket: %w", err)
		}
		objects = s3
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	log.Info("Catalog snapshots enabled",
		zap.String("driver", cfg.Driver),
		zap.String("bucket", cfg.Bucket),
		zap.String("key_prefix", cfg.KeyPrefix),
	)
	return appintegration.NewSnapshotService(store, objects, cfg.KeyPrefix, log.Named("snapshots")), nil
}

// ---------------------------------------------------------------------------
// Service authentication
// ---------------------------------------------------------------------------

type authStack struct {
	middleware []gin.HandlerFunc
	closer     func() error
}

// buildAuth returns no middleware when auth.secret is empty. Revocations are
// shared through Redis when it is configured and kept in memory otherwise.
func buildAuth(cfg *config.Config, log *zap.Logger) (*authStack, error) {
	a := &authStack{closer: func() error { return nil }}
	if !cfg.Auth.Enabled() {
		log.Warn("Service authentication disabled: auth.secret is empty")
		return a, nil
	}

	var revocations auth.RevocationList
	if cfg.Redis.Host != "" {
		redisList, err := auth.NewRedisRevocationList(cfg.Redis, cfg.Auth.RevocationPrefix)
		if err != nil {
			return nil, err
		}
		revocations = redisList
		a.closer = redisList.Close
	} else {
		revocations = auth.NewInMemoryRevocationList()
	}

	a.middleware = []gin.HandlerFunc{
		middleware.ServiceAuth(middleware.ServiceAuthConfig{
			Tokens:      auth.NewTokenService(cfg.Auth),
			Revocations: revocations,
			Logger:      log,
		}),
		middleware.ScopeForMethod(),
	}
	log.Info("Service authentication enabled", zap.String("issuer", cfg.Auth.Issuer))
	return a, nil
}

// ---------------------------------------------------------------------------
// Scheduled syncs
// ---------------------------------------------------------------------------

type jobRunner struct {
	scheduler *scheduler.CatalogSyncScheduler
	trigger   *scheduler.IntervalTrigger
	log       *zap.Logger
}

// startJobs starts the catalog sync scheduler when at least two platforms
// have adapters, and the interval trigger when a schedule is configured.
// With fewer platforms the returned runner has a nil scheduler.
func startJobs(ctx context.Context, cfg *config.Config, stack *syncStack, log *zap.Logger) (*jobRunner, error) {
	r := &jobRunner{log: log}
	if len(stack.syncService.Platforms()) < 2 {
		log.Info("Scheduled sync disabled: fewer than two platforms configured")
		return r, nil
	}

	executor := scheduler.NewCatalogSyncExecutor(scheduler.PageSyncerFunc(func(
		ctx context.Context,
		source, destination integration.PlatformCode,
		page integration.PageParams,
		opts integration.SyncOptions,
	) (*integration.BatchReport, error) {
		return stack.syncService.SyncBatch(ctx, appintegration.BatchRequest{
			Source:      source,
			Page:        page,
			Destination: destination,
			Options:     opts,
		})
	}), cfg.Sync.PageSize, 0, log)

	schedulerConfig := scheduler.DefaultCatalogSyncSchedulerConfig()
	schedulerConfig.JobTimeout = cfg.Sync.ScheduleTimeout
	s, err := scheduler.NewCatalogSyncScheduler(schedulerConfig, executor, log)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	r.scheduler = s

	if !cfg.Sync.ScheduleEnabled {
		return r, nil
	}
	source, err := integration.ParsePlatformCode(cfg.Sync.ScheduleSource)
	if err != nil {
		r.stop(ctx)
		return nil, fmt.Errorf("schedule source: %w", err)
	}
	destination, err := integration.ParsePlatformCode(cfg.Sync.ScheduleDestination)
	if err != nil {
		r.stop(ctx)
		return nil, fmt.Errorf("schedule destination: %w", err)
	}
	trigger, err := scheduler.NewIntervalTrigger(scheduler.IntervalTriggerConfig{
		Interval:    cfg.Sync.ScheduleInterval,
		Source:      source,
		Destination: destination,
		Options:     integration.SyncOptions{Upsert: true},
	}, s, log)
	if err != nil {
		r.stop(ctx)
		return nil, err
	}
	if err := trigger.Start(ctx); err != nil {
		r.stop(ctx)
		return nil, err
	}
	r.trigger = trigger
	log.Info("Scheduled sync enabled",
		zap.Stringer("source", source),
		zap.Stringer("destination", destination),
		zap.Duration("interval", cfg.Sync.ScheduleInterval),
	)
	return r, nil
}

// stop stops the trigger before the scheduler it submits to
func (r *jobRunner) stop(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if r.trigger != nil {
		if err := r.trigger.Stop(ctx); err != nil {
			r.log.Error("Error stopping sync trigger", zap.Error(err))
		}
	}
	if r.scheduler != nil {
		if err := r.scheduler.Stop(ctx); err != nil {
			r.log.Error("Error stopping catalog sync scheduler", zap.Error(err))
		}
	}
}
