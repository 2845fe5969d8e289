package persistence

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSyncMappingRepository implements SyncMappingRepository using GORM
type GormSyncMappingRepository struct {
	db *gorm.DB
}

// NewGormSyncMappingRepository creates a new GormSyncMappingRepository
func NewGormSyncMappingRepository(db *gorm.DB) *GormSyncMappingRepository {
	return &GormSyncMappingRepository{db: db}
}

// ---------------------------------------------------------------------------
// SyncMappingReader implementation
// ---------------------------------------------------------------------------

// FindByID finds a mapping by its ID
func (r *GormSyncMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.SyncMapping, error) {
	var model models.SyncMappingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mappingLookupError(err)
	}
	return model.ToDomain(), nil
}

// FindByCanonicalAndPlatform finds the mapping of a canonical product on one platform
func (r *GormSyncMappingRepository) FindByCanonicalAndPlatform(ctx context.Context, canonicalProductID uuid.UUID, platform integration.PlatformCode) (*integration.SyncMapping, error) {
	var model models.SyncMappingModel
	if err := r.db.WithContext(ctx).
		Where("canonical_product_id = ? AND platform = ?", canonicalProductID, platform).
		First(&model).Error; err != nil {
		return nil, mappingLookupError(err)
	}
	return model.ToDomain(), nil
}

// FindByCanonicalProduct finds all mappings of a canonical product, ordered by platform
func (r *GormSyncMappingRepository) FindByCanonicalProduct(ctx context.Context, canonicalProductID uuid.UUID) ([]integration.SyncMapping, error) {
	var mappingModels []models.SyncMappingModel
	if err := r.db.WithContext(ctx).
		Where("canonical_product_id = ?", canonicalProductID).
		Order("platform ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]integration.SyncMapping, len(mappingModels))
	for i, model := range mappingModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// FindByPlatformProduct finds a mapping by platform product ID
func (r *GormSyncMappingRepository) FindByPlatformProduct(ctx context.Context, platform integration.PlatformCode, platformProductID string) (*integration.SyncMapping, error) {
	var model models.SyncMappingModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND platform_product_id = ?", platform, platformProductID).
		First(&model).Error; err != nil {
		return nil, mappingLookupError(err)
	}
	return model.ToDomain(), nil
}

// ---------------------------------------------------------------------------
// SyncMappingWriter implementation
// ---------------------------------------------------------------------------

// Save creates or updates a mapping
func (r *GormSyncMappingRepository) Save(ctx context.Context, mapping *integration.SyncMapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}
	model := models.SyncMappingModelFromDomain(mapping)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Delete deletes a mapping
func (r *GormSyncMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SyncMappingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return integration.ErrMappingNotFound
	}
	return nil
}

// CountByStatus returns the number of mappings per sync status on a platform
func (r *GormSyncMappingRepository) CountByStatus(ctx context.Context, platform integration.PlatformCode) (map[integration.MappingStatus]int64, error) {
	var rows []struct {
		SyncStatus integration.MappingStatus
		Count      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SyncMappingModel{}).
		Select("sync_status, COUNT(*) AS count").
		Where("platform = ?", platform).
		Group("sync_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make(map[integration.MappingStatus]int64, len(rows))
	for _, row := range rows {
		stats[row.SyncStatus] = row.Count
	}
	return stats, nil
}

func mappingLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return integration.ErrMappingNotFound
	}
	return err
}
