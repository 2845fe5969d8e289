package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxConcurrency caps the per-batch worker pool
	DefaultMaxConcurrency = 8
)

// SyncServiceConfig tunes batch execution
type SyncServiceConfig struct {
	// DefaultConcurrency is used when a request leaves Concurrency unset
	DefaultConcurrency int
	// MaxConcurrency caps any requested concurrency
	MaxConcurrency int
}

// SyncService orchestrates catalog sync between platforms through the
// canonical product. Each item runs the pipeline
// Pending -> Fetched -> Normalized -> Denormalized -> Pushed -> Recorded
// and every per-item failure is folded into its SyncResult. Only
// configuration errors are returned to the caller.
//
// Concurrent pushes of the same canonical product to the same destination
// are not serialized here; callers that run overlapping batches must do so.
type SyncService struct {
	registry integration.PlatformRegistry
	mappings integration.SyncMappingRepository
	store    integration.CanonicalProductStore
	pacer    integration.Pacer
	logger   *zap.Logger
	metrics  *telemetry.SyncMetrics
	config   SyncServiceConfig
}

// NewSyncService creates a new SyncService. A nil pacer disables pacing.
func NewSyncService(
	registry integration.PlatformRegistry,
	mappings integration.SyncMappingRepository,
	pacer integration.Pacer,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		registry: registry,
		mappings: mappings,
		pacer:    pacer,
		logger:   logger,
		config: SyncServiceConfig{
			DefaultConcurrency: 1,
			MaxConcurrency:     DefaultMaxConcurrency,
		},
	}
}

// SetConfig replaces the batch execution settings
func (s *SyncService) SetConfig(cfg SyncServiceConfig) {
	if cfg.DefaultConcurrency < 1 {
		cfg.DefaultConcurrency = 1
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	s.config = cfg
}

// SetCanonicalStore sets the store ImportFrom saves into
func (s *SyncService) SetCanonicalStore(store integration.CanonicalProductStore) {
	s.store = store
}

// SetSyncMetrics sets the sync metrics recorder
func (s *SyncService) SetSyncMetrics(m *telemetry.SyncMetrics) {
	s.metrics = m
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// SyncRequest syncs one source product to a destination platform
type SyncRequest struct {
	Source      integration.PlatformCode
	SourceID    string
	Destination integration.PlatformCode
	Options     integration.SyncOptions
}

// BatchRequest syncs one page of source products to a destination platform
type BatchRequest struct {
	Source      integration.PlatformCode
	Page        integration.PageParams
	Destination integration.PlatformCode
	Options     integration.SyncOptions
}

// endpoint is a resolved platform: its adapter (nil when not needed) and transformer
type endpoint struct {
	code        integration.PlatformCode
	adapter     integration.PlatformAdapter
	transformer integration.Transformer
}

func (s *SyncService) resolve(code integration.PlatformCode, needAdapter bool) (endpoint, error) {
	ep := endpoint{code: code}
	t, err := s.registry.Transformer(code)
	if err != nil {
		return ep, err
	}
	ep.transformer = t
	if needAdapter {
		a, err := s.registry.Adapter(code)
		if err != nil {
			return ep, err
		}
		ep.adapter = a
	}
	return ep, nil
}

// ---------------------------------------------------------------------------
// SyncOne / SyncBatch
// ---------------------------------------------------------------------------

// SyncOne fetches one source product and pushes it to the destination.
// Dry runs stop after Denormalized and never need a destination adapter.
func (s *SyncService) SyncOne(ctx context.Context, req SyncRequest) (integration.SyncResult, error) {
	src, err := s.resolve(req.Source, true)
	if err != nil {
		return integration.SyncResult{}, err
	}
	dst, err := s.resolve(req.Destination, !req.Options.DryRun)
	if err != nil {
		return integration.SyncResult{}, err
	}

	ctx, span := telemetry.StartSyncSpan(ctx, "sync_one",
		telemetry.SpanAttrSourcePlatform.String(req.Source.String()),
		telemetry.SpanAttrDestination.String(req.Destination.String()),
		telemetry.SpanAttrSourceID.String(req.SourceID),
		telemetry.SpanAttrDryRun.Bool(req.Options.DryRun),
	)
	defer span.End()

	result := s.syncItem(ctx, src, dst, req.SourceID, nil, req.Options)
	if !result.Success {
		telemetry.RecordError(span, result.Err())
	}
	return result, nil
}

// SyncBatch fetches one page from the source and syncs every item on it.
// It returns exactly one result per fetched item, in fetched order. A page
// fetch failure is returned as an error since no item exists to carry it.
func (s *SyncService) SyncBatch(ctx context.Context, req BatchRequest) (*integration.BatchReport, error) {
	src, err := s.resolve(req.Source, true)
	if err != nil {
		return nil, err
	}
	dst, err := s.resolve(req.Destination, !req.Options.DryRun)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSyncSpan(ctx, "sync_batch",
		telemetry.SpanAttrSourcePlatform.String(req.Source.String()),
		telemetry.SpanAttrDestination.String(req.Destination.String()),
		telemetry.SpanAttrDryRun.Bool(req.Options.DryRun),
	)
	defer span.End()

	startedAt := time.Now()
	page, err := src.adapter.FetchMany(ctx, req.Page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("fetch %s page: %w", req.Source, err)
	}

	items := page.Items
	var (
		results   []integration.SyncResult
		cancelled bool
	)
	telemetry.WithSyncLabels(ctx, "sync_batch", req.Source.String(), req.Destination.String(), func(ctx context.Context) {
		results, cancelled = runOrdered(ctx, s.pacer, len(items), s.concurrency(req.Options),
			func(ctx context.Context, i int) integration.SyncResult {
				return s.syncItem(ctx, src, dst, items[i].ExternalID(), items[i], req.Options)
			},
			func(i int, err error) integration.SyncResult {
				return integration.NewFailedResult(items[i].ExternalID(), integration.SyncStepPending, err)
			},
		)
	})

	report := integration.NewBatchReport(results, startedAt)
	report.Cancelled = cancelled
	report.NextCursor = page.NextCursor
	report.NextPage = page.NextPage
	report.HasMore = page.HasMore

	telemetry.RecordItemCounts(span, report.Total, report.Failed)
	if s.metrics != nil {
		s.metrics.RecordBatch(ctx, req.Source, req.Destination, report)
	}
	s.logger.Info("Catalog batch sync finished",
		zap.String("source_platform", req.Source.String()),
		zap.String("destination", req.Destination.String()),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Bool("cancelled", report.Cancelled),
		zap.Bool("dry_run", req.Options.DryRun),
	)
	return report, nil
}

// syncItem runs the full pipeline for one source product. raw is the
// already-fetched payload from a page, or nil to fetch by sourceID.
func (s *SyncService) syncItem(
	ctx context.Context,
	src, dst endpoint,
	sourceID string,
	raw integration.RawProduct,
	opts integration.SyncOptions,
) integration.SyncResult {
	started := time.Now()
	log := s.logger.With(
		zap.String("source_platform", src.code.String()),
		zap.String("source_id", sourceID),
		zap.String("destination", dst.code.String()),
	)

	result := func() integration.SyncResult {
		canonical, res, ok := s.fetchAndNormalize(ctx, src, sourceID, raw, log)
		if !ok {
			return res
		}
		return s.pushCanonical(ctx, dst, canonical, sourceID, opts, log)
	}()

	if s.metrics != nil {
		s.metrics.RecordItem(ctx, src.code, dst.code, result, time.Since(started))
	}
	return result
}

// fetchAndNormalize covers Pending -> Fetched -> Normalized. The returned
// product carries its canonical identity as InternalID.
func (s *SyncService) fetchAndNormalize(
	ctx context.Context,
	src endpoint,
	sourceID string,
	raw integration.RawProduct,
	log *zap.Logger,
) (*integration.CanonicalProduct, integration.SyncResult, bool) {
	if raw == nil {
		fetched, err := src.adapter.FetchOne(ctx, sourceID)
		if err != nil {
			return nil, s.fail(log, sourceID, integration.SyncStepFetched, err), false
		}
		raw = fetched
	}

	var variants []integration.RawVariant
	if src.transformer.NeedsVariantFetch(raw) {
		fetched, err := src.adapter.FetchVariants(ctx, raw.ExternalID())
		if err != nil {
			return nil, s.fail(log, sourceID, integration.SyncStepFetched, err), false
		}
		variants = fetched
	}
	log.Debug("Source product fetched", zap.String("step", integration.SyncStepFetched.String()), zap.Int("variants", len(variants)))

	canonical, err := src.transformer.Normalize(raw, variants)
	if err != nil {
		return nil, s.fail(log, sourceID, integration.SyncStepNormalized, err), false
	}
	canonical = canonical.WithInternalID(canonical.IdentityID())
	log.Debug("Source product normalized", zap.String("step", integration.SyncStepNormalized.String()),
		zap.String("canonical_id", canonical.InternalID.String()))
	return canonical, integration.SyncResult{}, true
}

// pushCanonical covers Denormalized -> Pushed -> Recorded for a canonical
// product. It is shared by SyncOne, SyncBatch and ExportTo.
func (s *SyncService) pushCanonical(
	ctx context.Context,
	dst endpoint,
	canonical *integration.CanonicalProduct,
	sourceID string,
	opts integration.SyncOptions,
	log *zap.Logger,
) integration.SyncResult {
	payload, err := dst.transformer.Denormalize(canonical)
	if err != nil {
		return s.fail(log, sourceID, integration.SyncStepDenormalized, err)
	}
	if len(payload.Dropped) > 0 {
		log.Debug("Fields without destination slot dropped", zap.Strings("fields", payload.Dropped))
	}

	if opts.DryRun {
		log.Info("Dry run: destination untouched",
			zap.String("step", integration.SyncStepDenormalized.String()),
			zap.String("kind", string(payload.Kind)))
		return integration.SyncResult{
			Success:   true,
			SourceID:  sourceID,
			Step:      integration.SyncStepDenormalized,
			DryRun:    true,
			Preview:   payload,
			Timestamp: time.Now(),
		}
	}

	canonicalID := canonical.IdentityID()
	existing, err := s.mappings.FindByCanonicalAndPlatform(ctx, canonicalID, dst.code)
	if err != nil {
		if !errors.Is(err, integration.ErrMappingNotFound) {
			return s.fail(log, sourceID, integration.SyncStepPushed, fmt.Errorf("lookup sync mapping: %w", err))
		}
		existing = nil
	}

	var pushed integration.RawProduct
	created := true
	if opts.Upsert && existing != nil {
		created = false
		pushed, err = dst.adapter.Update(ctx, existing.PlatformProductID, payload.Product)
	} else {
		pushed, err = dst.adapter.Create(ctx, payload.Product)
	}
	if err != nil {
		if existing != nil {
			s.recordFailure(ctx, existing, err, log)
		}
		return s.fail(log, sourceID, integration.SyncStepPushed, err)
	}

	destinationID := pushed.ExternalID()
	mapping := existing
	if mapping == nil {
		mapping, err = integration.NewSyncMapping(canonicalID, dst.code, destinationID)
		if err != nil {
			return s.fail(log, sourceID, integration.SyncStepRecorded, err)
		}
	} else if created {
		if err := mapping.Repoint(destinationID); err != nil {
			return s.fail(log, sourceID, integration.SyncStepRecorded, err)
		}
	} else if destinationID != "" {
		mapping.PlatformProductID = destinationID
	}

	if carrier, ok := pushed.(integration.VariantCarrier); ok {
		recordVariantIDs(mapping, carrier.EmbeddedVariants())
	}

	// Variation sub-resources need the parent ID, so they go after the push.
	// On an update, SKUs already mapped exist under this parent and are skipped.
	for _, v := range payload.Variants {
		if sku := v.VariantSKU(); sku != "" {
			if _, ok := mapping.VariantID(sku); ok {
				continue
			}
		}
		createdVariant, err := dst.adapter.CreateVariant(ctx, destinationID, v)
		if err != nil {
			s.recordFailure(ctx, mapping, err, log)
			return s.fail(log, sourceID, integration.SyncStepPushed, fmt.Errorf("create variant %q: %w", v.VariantSKU(), err))
		}
		recordVariantIDs(mapping, []integration.RawVariant{createdVariant})
	}
	log.Debug("Destination updated",
		zap.String("step", integration.SyncStepPushed.String()),
		zap.String("destination_id", destinationID),
		zap.Bool("created", created))

	mapping.RecordSyncSuccess()
	if err := s.mappings.Save(ctx, mapping); err != nil {
		return s.fail(log, sourceID, integration.SyncStepRecorded, fmt.Errorf("save sync mapping: %w", err))
	}

	log.Info("Product synced",
		zap.String("step", integration.SyncStepRecorded.String()),
		zap.String("destination_id", destinationID),
		zap.Bool("created", created))
	return integration.SyncResult{
		Success:       true,
		SourceID:      sourceID,
		DestinationID: destinationID,
		Step:          integration.SyncStepRecorded,
		Created:       created,
		Timestamp:     time.Now(),
	}
}

// recordFailure marks an existing mapping as errored. The push error is what
// the caller sees, so a failed save is only logged.
func (s *SyncService) recordFailure(ctx context.Context, mapping *integration.SyncMapping, cause error, log *zap.Logger) {
	if mapping.Validate() != nil {
		return
	}
	mapping.RecordSyncFailure(cause.Error())
	if err := s.mappings.Save(ctx, mapping); err != nil {
		log.Warn("Failed to record sync failure on mapping", zap.String("mapping_id", mapping.ID.String()), zap.Error(err))
	}
}

func recordVariantIDs(mapping *integration.SyncMapping, variants []integration.RawVariant) {
	for _, v := range variants {
		if v == nil || v.VariantSKU() == "" || v.ExternalID() == "" {
			continue
		}
		_ = mapping.SetVariantID(v.VariantSKU(), v.ExternalID())
	}
}

func (s *SyncService) fail(log *zap.Logger, sourceID string, step integration.SyncStep, err error) integration.SyncResult {
	log.Warn("Product sync failed",
		zap.String("step", step.String()),
		zap.Bool("upstream", integration.IsUpstreamError(err)),
		zap.Error(err))
	return integration.NewFailedResult(sourceID, step, err)
}

// ---------------------------------------------------------------------------
// ImportFrom / ExportTo
// ---------------------------------------------------------------------------

// ImportFrom fetches and normalizes one page of source products without
// pushing anywhere. Products are saved to the canonical store when one is set.
func (s *SyncService) ImportFrom(ctx context.Context, source integration.PlatformCode, page integration.PageParams) (*integration.ImportReport, error) {
	src, err := s.resolve(source, true)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSyncSpan(ctx, "import_from",
		telemetry.SpanAttrSourcePlatform.String(source.String()),
	)
	defer span.End()

	fetched, err := src.adapter.FetchMany(ctx, page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("fetch %s page: %w", source, err)
	}

	items := fetched.Items
	imported, cancelled := runOrdered(ctx, s.pacer, len(items), s.config.DefaultConcurrency,
		func(ctx context.Context, i int) integration.ImportedProduct {
			return s.importItem(ctx, src, items[i])
		},
		func(i int, err error) integration.ImportedProduct {
			return integration.ImportedProduct{
				Result: integration.NewFailedResult(items[i].ExternalID(), integration.SyncStepPending, err),
			}
		},
	)

	report := &integration.ImportReport{
		Items:      imported,
		Total:      len(imported),
		Cancelled:  cancelled,
		NextCursor: fetched.NextCursor,
		NextPage:   fetched.NextPage,
		HasMore:    fetched.HasMore,
	}
	for _, item := range imported {
		if item.Result.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	s.logger.Info("Catalog import finished",
		zap.String("source_platform", source.String()),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Bool("stored", s.store != nil),
	)
	return report, nil
}

func (s *SyncService) importItem(ctx context.Context, src endpoint, raw integration.RawProduct) integration.ImportedProduct {
	sourceID := raw.ExternalID()
	log := s.logger.With(zap.String("source_platform", src.code.String()), zap.String("source_id", sourceID))

	canonical, res, ok := s.fetchAndNormalize(ctx, src, sourceID, raw, log)
	if !ok {
		return integration.ImportedProduct{Result: res}
	}

	step := integration.SyncStepNormalized
	if s.store != nil {
		if err := s.store.Save(ctx, canonical); err != nil {
			return integration.ImportedProduct{
				Result: s.fail(log, sourceID, integration.SyncStepRecorded, fmt.Errorf("save canonical product: %w", err)),
			}
		}
		step = integration.SyncStepRecorded
	}

	return integration.ImportedProduct{
		Result: integration.SyncResult{
			Success:   true,
			SourceID:  sourceID,
			Step:      step,
			Timestamp: time.Now(),
		},
		Product: canonical,
	}
}

// ExportTo validates, denormalizes and pushes already-canonical products.
// Result SourceIDs are the canonical external IDs.
func (s *SyncService) ExportTo(
	ctx context.Context,
	destination integration.PlatformCode,
	items []*integration.CanonicalProduct,
	opts integration.SyncOptions,
) (*integration.BatchReport, error) {
	dst, err := s.resolve(destination, !opts.DryRun)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSyncSpan(ctx, "export_to",
		telemetry.SpanAttrDestination.String(destination.String()),
		telemetry.SpanAttrDryRun.Bool(opts.DryRun),
		telemetry.SpanAttrItemsTotal.Int(len(items)),
	)
	defer span.End()

	startedAt := time.Now()
	sourceIDOf := func(i int) string {
		if items[i] == nil {
			return ""
		}
		return items[i].ExternalID
	}

	results, cancelled := runOrdered(ctx, s.pacer, len(items), s.concurrency(opts),
		func(ctx context.Context, i int) integration.SyncResult {
			started := time.Now()
			source := integration.PlatformCode("")
			if items[i] != nil {
				source = items[i].SourcePlatform
			}
			log := s.logger.With(
				zap.String("source_platform", source.String()),
				zap.String("source_id", sourceIDOf(i)),
				zap.String("destination", destination.String()),
			)

			var result integration.SyncResult
			if items[i] == nil {
				result = s.fail(log, "", integration.SyncStepNormalized, integration.ErrInvalidCanonicalProduct)
			} else if err := items[i].Validate(); err != nil {
				result = s.fail(log, sourceIDOf(i), integration.SyncStepNormalized, err)
			} else {
				canonical := items[i].WithInternalID(items[i].IdentityID())
				result = s.pushCanonical(ctx, dst, canonical, sourceIDOf(i), opts, log)
			}

			if s.metrics != nil {
				s.metrics.RecordItem(ctx, source, destination, result, time.Since(started))
			}
			return result
		},
		func(i int, err error) integration.SyncResult {
			return integration.NewFailedResult(sourceIDOf(i), integration.SyncStepPending, err)
		},
	)

	report := integration.NewBatchReport(results, startedAt)
	report.Cancelled = cancelled
	telemetry.RecordItemCounts(span, report.Total, report.Failed)
	s.logger.Info("Catalog export finished",
		zap.String("destination", destination.String()),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Bool("dry_run", opts.DryRun),
	)
	return report, nil
}

// TestConnection reports whether the platform answers with the configured
// credentials. Only configuration errors are returned.
func (s *SyncService) TestConnection(ctx context.Context, platform integration.PlatformCode) (bool, error) {
	a, err := s.registry.Adapter(platform)
	if err != nil {
		return false, err
	}
	ok := a.TestConnection(ctx)
	s.logger.Debug("Platform connection tested", zap.String("platform", platform.String()), zap.Bool("ok", ok))
	return ok, nil
}

// Platforms lists platforms with a configured adapter
func (s *SyncService) Platforms() []integration.PlatformCode {
	return s.registry.Platforms()
}

// ---------------------------------------------------------------------------
// Ordered bounded execution
// ---------------------------------------------------------------------------

func (s *SyncService) concurrency(opts integration.SyncOptions) int {
	n := opts.Concurrency
	if n < 1 {
		n = s.config.DefaultConcurrency
	}
	if n < 1 {
		n = 1
	}
	if s.config.MaxConcurrency > 0 && n > s.config.MaxConcurrency {
		n = s.config.MaxConcurrency
	}
	return n
}

// runOrdered runs n items with at most limit in flight and writes each
// outcome at its original index. A worker slot is taken before the pacer is
// consulted, so pacing spaces item starts and a sequential run waits after
// the previous item finishes. The first item is not paced. Once ctx ends, no
// further item starts: unstarted items get cancel(i, err) and in-flight items
// run to completion on a context that ignores the cancellation.
func runOrdered[T any](
	ctx context.Context,
	pacer integration.Pacer,
	n, limit int,
	run func(ctx context.Context, i int) T,
	cancel func(i int, err error) T,
) ([]T, bool) {
	out := make([]T, n)
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	slots := make(chan struct{}, limit)
	itemCtx := context.WithoutCancel(ctx)

	started := 0
	var stopErr error
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			stopErr = ctx.Err()
		}
		if stopErr == nil {
			stopErr = ctx.Err()
		}
		if stopErr != nil {
			break
		}
		if i > 0 && pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				<-slots
				stopErr = err
				break
			}
		}
		idx := i
		g.Go(func() error {
			defer func() { <-slots }()
			out[idx] = run(itemCtx, idx)
			return nil
		})
		started++
	}
	_ = g.Wait()

	if started == n {
		return out, false
	}
	cause := fmt.Errorf("%w: %w", integration.ErrSyncCancelled, stopErr)
	for i := started; i < n; i++ {
		out[i] = cancel(i, cause)
	}
	return out, true
}
