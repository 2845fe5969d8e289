package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
)

// PageSyncer syncs one page of a source catalog to a destination
type PageSyncer interface {
	SyncPage(
		ctx context.Context,
		source, destination integration.PlatformCode,
		page integration.PageParams,
		opts integration.SyncOptions,
	) (*integration.BatchReport, error)
}

// PageSyncerFunc adapts a function to PageSyncer
type PageSyncerFunc func(
	ctx context.Context,
	source, destination integration.PlatformCode,
	page integration.PageParams,
	opts integration.SyncOptions,
) (*integration.BatchReport, error)

// SyncPage implements PageSyncer
func (f PageSyncerFunc) SyncPage(
	ctx context.Context,
	source, destination integration.PlatformCode,
	page integration.PageParams,
	opts integration.SyncOptions,
) (*integration.BatchReport, error) {
	return f(ctx, source, destination, page, opts)
}

// CatalogSyncExecutor walks the pages of a source catalog
type CatalogSyncExecutor struct {
	syncer   PageSyncer
	pageSize int
	maxPages int
	logger   *zap.Logger
}

// NewCatalogSyncExecutor creates an executor. maxPages <= 0 means unlimited.
func NewCatalogSyncExecutor(syncer PageSyncer, pageSize, maxPages int, log *zap.Logger) *CatalogSyncExecutor {
	if log == nil {
		log = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &CatalogSyncExecutor{
		syncer:   syncer,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   log,
	}
}

// Execute syncs every page in source order. A page fetch error ends the run
// with the pages synced so far in the summary.
func (e *CatalogSyncExecutor) Execute(ctx context.Context, job *CatalogSyncJob) (RunSummary, error) {
	ctx, log := logger.WithSyncRun(ctx, e.logger, logger.SyncRun{
		ID:          job.ID.String(),
		Operation:   "scheduled_sync",
		Source:      job.Source.String(),
		Destination: job.Destination.String(),
	})

	var summary RunSummary
	page := integration.PageParams{Page: 1, PerPage: e.pageSize}
	for {
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			return summary, cancellationError(err)
		}
		if e.maxPages > 0 && summary.Pages >= e.maxPages {
			return summary, fmt.Errorf("%w: %d pages", ErrPageLimitReached, e.maxPages)
		}

		report, err := e.syncer.SyncPage(ctx, job.Source, job.Destination, page, job.Options)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				summary.Cancelled = true
				return summary, cancellationError(ctxErr)
			}
			return summary, fmt.Errorf("sync page %d: %w", summary.Pages+1, err)
		}
		summary.AddPage(report)

		log.Debug("Catalog page synced",
			zap.Int("page", summary.Pages),
			zap.Int("items", report.Total),
			zap.Int("failed", report.Failed),
			zap.Bool("has_more", report.HasMore),
		)

		if report.Cancelled {
			return summary, cancellationError(ctx.Err())
		}
		next, ok := nextPage(page, report)
		if !ok {
			break
		}
		page = next
	}

	log.Info("Scheduled catalog sync finished",
		zap.Int("pages", summary.Pages),
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// nextPage continues pagination from a batch report
func nextPage(p integration.PageParams, report *integration.BatchReport) (integration.PageParams, bool) {
	pg := &integration.ProductPage{
		NextCursor: report.NextCursor,
		NextPage:   report.NextPage,
		HasMore:    report.HasMore,
	}
	next, ok := pg.Next(p)
	if !ok {
		return p, false
	}
	if next.Cursor == p.Cursor && next.Page == p.Page {
		// The source claims more pages without a way to reach them.
		next.Page++
	}
	return next, true
}

// cancellationError separates a job timeout, which is retried, from a
// scheduler shutdown.
func cancellationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrSyncTimeout
	}
	if err == nil {
		return integration.ErrSyncCancelled
	}
	return fmt.Errorf("%w: %w", integration.ErrSyncCancelled, err)
}
