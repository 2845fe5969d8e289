package handler

import (
	"context"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) SyncOne(ctx context.Context, req appintegration.SyncRequest) (integration.SyncResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(integration.SyncResult), args.Error(1)
}

func (m *mockSyncer) SyncBatch(ctx context.Context, req appintegration.BatchRequest) (*integration.BatchReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.BatchReport), args.Error(1)
}

func (m *mockSyncer) ImportFrom(ctx context.Context, source integration.PlatformCode, page integration.PageParams) (*integration.ImportReport, error) {
	args := m.Called(ctx, source, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ImportReport), args.Error(1)
}

func (m *mockSyncer) ExportTo(ctx context.Context, destination integration.PlatformCode, items []*integration.CanonicalProduct, opts integration.SyncOptions) (*integration.BatchReport, error) {
	args := m.Called(ctx, destination, items, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.BatchReport), args.Error(1)
}

func (m *mockSyncer) TestConnection(ctx context.Context, platform integration.PlatformCode) (bool, error) {
	args := m.Called(ctx, platform)
	return args.Bool(0), args.Error(1)
}

func (m *mockSyncer) Platforms() []integration.PlatformCode {
	return m.Called().Get(0).([]integration.PlatformCode)
}

type mockQueries struct {
	mock.Mock
}

func (m *mockQueries) GetMappings(ctx context.Context, canonicalID uuid.UUID) ([]appintegration.SyncMappingResponse, error) {
	args := m.Called(ctx, canonicalID)
	return args.Get(0).([]appintegration.SyncMappingResponse), args.Error(1)
}

func (m *mockQueries) GetMapping(ctx context.Context, canonicalID uuid.UUID, platform integration.PlatformCode) (*appintegration.SyncMappingResponse, error) {
	args := m.Called(ctx, canonicalID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.SyncMappingResponse), args.Error(1)
}

func (m *mockQueries) FindByPlatformProduct(ctx context.Context, platform integration.PlatformCode, platformProductID string) (*appintegration.SyncMappingResponse, error) {
	args := m.Called(ctx, platform, platformProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.SyncMappingResponse), args.Error(1)
}

func (m *mockQueries) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockQueries) ListProducts(ctx context.Context, query appintegration.ProductListQuery) (*appintegration.CanonicalProductListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.CanonicalProductListResponse), args.Error(1)
}

func (m *mockQueries) GetProduct(ctx context.Context, id uuid.UUID) (*integration.CanonicalProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.CanonicalProduct), args.Error(1)
}

type mockScheduler struct {
	mock.Mock
}

func (m *mockScheduler) ScheduleSync(source, destination integration.PlatformCode, opts integration.SyncOptions) (scheduler.CatalogSyncJob, error) {
	args := m.Called(source, destination, opts)
	return args.Get(0).(scheduler.CatalogSyncJob), args.Error(1)
}

func (m *mockScheduler) GetJob(id uuid.UUID) (scheduler.CatalogSyncJob, bool) {
	args := m.Called(id)
	return args.Get(0).(scheduler.CatalogSyncJob), args.Bool(1)
}

func (m *mockScheduler) ActiveJobs() []scheduler.CatalogSyncJob {
	return m.Called().Get(0).([]scheduler.CatalogSyncJob)
}

func (m *mockScheduler) GetJobHistory(limit int) []scheduler.CatalogSyncJob {
	return m.Called(limit).Get(0).([]scheduler.CatalogSyncJob)
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) CreateSnapshot(ctx context.Context) (*appintegration.SnapshotResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.SnapshotResponse), args.Error(1)
}

func (m *mockSnapshots) GetSnapshot(ctx context.Context, name string) (*appintegration.SnapshotResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.SnapshotResponse), args.Error(1)
}

func (m *mockSnapshots) ListSnapshots(ctx context.Context) ([]appintegration.SnapshotResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appintegration.SnapshotResponse), args.Error(1)
}

func (m *mockSnapshots) DeleteSnapshot(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
