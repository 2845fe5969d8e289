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

// GormCanonicalProductRepository implements CanonicalProductStore using GORM
type GormCanonicalProductRepository struct {
	db *gorm.DB
}

// NewGormCanonicalProductRepository creates a new GormCanonicalProductRepository
func NewGormCanonicalProductRepository(db *gorm.DB) *GormCanonicalProductRepository {
	return &GormCanonicalProductRepository{db: db}
}

// Save creates or replaces a product keyed by its identity ID
func (r *GormCanonicalProductRepository) Save(ctx context.Context, product *integration.CanonicalProduct) error {
	if product == nil {
		return integration.ErrInvalidCanonicalProduct
	}
	model, err := models.CanonicalProductModelFromDomain(product)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByID finds a product by its canonical ID
func (r *GormCanonicalProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.CanonicalProduct, error) {
	var model models.CanonicalProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, productLookupError(err)
	}
	return model.ToDomain()
}

// FindBySource finds a product by its source platform and external ID
func (r *GormCanonicalProductRepository) FindBySource(ctx context.Context, platform integration.PlatformCode, externalID string) (*integration.CanonicalProduct, error) {
	var model models.CanonicalProductModel
	if err := r.db.WithContext(ctx).
		Where("source_platform = ? AND external_id = ?", platform, externalID).
		First(&model).Error; err != nil {
		return nil, productLookupError(err)
	}
	return model.ToDomain()
}

// List returns a page of products and the total count. Ties are broken by ID
// so pages are stable.
func (r *GormCanonicalProductRepository) List(ctx context.Context, filter integration.ProductListFilter) ([]*integration.CanonicalProduct, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CanonicalProductModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Clauses(canonicalProductOrdering.clauses(filter.OrderBy, filter.OrderDir))
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var productModels []models.CanonicalProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*integration.CanonicalProduct, 0, len(productModels))
	for i := range productModels {
		p, err := productModels[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, nil
}

func productLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return integration.ErrCanonicalProductNotFound
	}
	return err
}
