package integration

import (
	"context"
	"fmt"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncMappingService exposes recorded sync mappings and stored canonical
// products for read access. It never creates mappings; only SyncService does.
type SyncMappingService struct {
	mappings integration.SyncMappingRepository
	store    integration.CanonicalProductStore
	logger   *zap.Logger
}

// NewSyncMappingService creates a new SyncMappingService. store may be nil
// when no canonical store is configured.
func NewSyncMappingService(
	mappings integration.SyncMappingRepository,
	store integration.CanonicalProductStore,
	logger *zap.Logger,
) *SyncMappingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncMappingService{mappings: mappings, store: store, logger: logger}
}

// GetMappings returns every platform mapping of a canonical product, sorted
// by platform code.
func (s *SyncMappingService) GetMappings(ctx context.Context, canonicalID uuid.UUID) ([]SyncMappingResponse, error) {
	if canonicalID == uuid.Nil {
		return nil, integration.ErrMappingInvalidCanonicalID
	}
	mappings, err := s.mappings.FindByCanonicalProduct(ctx, canonicalID)
	if err != nil {
		return nil, fmt.Errorf("find mappings: %w", err)
	}
	return ToSyncMappingResponses(mappings), nil
}

// GetMapping returns the mapping of a canonical product on one platform
func (s *SyncMappingService) GetMapping(
	ctx context.Context,
	canonicalID uuid.UUID,
	platform integration.PlatformCode,
) (*SyncMappingResponse, error) {
	if !platform.IsValid() {
		return nil, integration.ErrMappingInvalidPlatformCode
	}
	m, err := s.mappings.FindByCanonicalAndPlatform(ctx, canonicalID, platform)
	if err != nil {
		return nil, err
	}
	resp := ToSyncMappingResponse(m)
	return &resp, nil
}

// FindByPlatformProduct resolves a platform product ID back to its mapping
func (s *SyncMappingService) FindByPlatformProduct(
	ctx context.Context,
	platform integration.PlatformCode,
	platformProductID string,
) (*SyncMappingResponse, error) {
	if !platform.IsValid() {
		return nil, integration.ErrMappingInvalidPlatformCode
	}
	if platformProductID == "" {
		return nil, integration.ErrMappingInvalidPlatformID
	}
	m, err := s.mappings.FindByPlatformProduct(ctx, platform, platformProductID)
	if err != nil {
		return nil, err
	}
	resp := ToSyncMappingResponse(m)
	return &resp, nil
}

// DeleteMapping removes a mapping so the next sync of its product creates
// a fresh destination product.
func (s *SyncMappingService) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	m, err := s.mappings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.mappings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	s.logger.Info("Sync mapping deleted",
		zap.String("mapping_id", id.String()),
		zap.String("canonical_id", m.CanonicalProductID.String()),
		zap.String("platform", m.Platform.String()),
	)
	return nil
}

// ListProducts pages through the canonical store
func (s *SyncMappingService) ListProducts(ctx context.Context, query ProductListQuery) (*CanonicalProductListResponse, error) {
	if s.store == nil {
		return nil, ErrCanonicalStoreNotConfigured
	}
	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	products, total, err := s.store.List(ctx, integration.ProductListFilter{
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	})
	if err != nil {
		return nil, fmt.Errorf("list canonical products: %w", err)
	}
	return &CanonicalProductListResponse{
		Items:    products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProduct returns one stored canonical product
func (s *SyncMappingService) GetProduct(ctx context.Context, id uuid.UUID) (*integration.CanonicalProduct, error) {
	if s.store == nil {
		return nil, ErrCanonicalStoreNotConfigured
	}
	return s.store.FindByID(ctx, id)
}
