package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SyncMappingModel is the persistence model for the SyncMapping domain entity.
type SyncMappingModel struct {
	BaseModel
	CanonicalProductID uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex:idx_sync_mapping_canonical_platform,priority:1"`
	Platform           integration.PlatformCode  `gorm:"type:varchar(20);not null;uniqueIndex:idx_sync_mapping_canonical_platform,priority:2;index:idx_sync_mapping_platform_product,priority:1"`
	PlatformProductID  string                    `gorm:"type:varchar(100);not null;index:idx_sync_mapping_platform_product,priority:2"`
	VariantIDsJSON     string                    `gorm:"type:jsonb;column:platform_variant_ids"`
	SyncStatus         integration.MappingStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	LastSyncedAt       *time.Time                `gorm:"index"`
	ErrorMessage       string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SyncMappingModel) TableName() string {
	return "sync_mappings"
}

// ToDomain converts the persistence model to a domain SyncMapping entity.
func (m *SyncMappingModel) ToDomain() *integration.SyncMapping {
	mapping := &integration.SyncMapping{
		ID:                 m.ID,
		CanonicalProductID: m.CanonicalProductID,
		Platform:           m.Platform,
		PlatformProductID:  m.PlatformProductID,
		PlatformVariantIDs: make(map[string]string),
		SyncStatus:         m.SyncStatus,
		LastSyncedAt:       m.LastSyncedAt,
		ErrorMessage:       m.ErrorMessage,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.VariantIDsJSON != "" {
		var ids map[string]string
		if err := json.Unmarshal([]byte(m.VariantIDsJSON), &ids); err == nil && ids != nil {
			mapping.PlatformVariantIDs = ids
		}
	}

	return mapping
}

// FromDomain populates the persistence model from a domain SyncMapping entity.
func (m *SyncMappingModel) FromDomain(sm *integration.SyncMapping) {
	m.ID = sm.ID
	m.CanonicalProductID = sm.CanonicalProductID
	m.Platform = sm.Platform
	m.PlatformProductID = sm.PlatformProductID
	m.SyncStatus = sm.SyncStatus
	m.LastSyncedAt = sm.LastSyncedAt
	m.ErrorMessage = sm.ErrorMessage
	m.CreatedAt = sm.CreatedAt
	m.UpdatedAt = sm.UpdatedAt
	m.stamp(time.Now())

	m.VariantIDsJSON = "{}"
	if len(sm.PlatformVariantIDs) > 0 {
		if b, err := json.Marshal(sm.PlatformVariantIDs); err == nil {
			m.VariantIDsJSON = string(b)
		}
	}
}

// SyncMappingModelFromDomain creates a new persistence model from a domain SyncMapping entity.
func SyncMappingModelFromDomain(sm *integration.SyncMapping) *SyncMappingModel {
	m := &SyncMappingModel{}
	m.FromDomain(sm)
	return m
}

// CanonicalProductModel stores an imported canonical product. The searchable
// fields are columns; the full product is kept as JSON in Data.
type CanonicalProductModel struct {
	BaseModel
	SourcePlatform integration.PlatformCode  `gorm:"type:varchar(20);not null;uniqueIndex:idx_canonical_product_source,priority:1"`
	ExternalID     string                    `gorm:"type:varchar(100);not null;uniqueIndex:idx_canonical_product_source,priority:2"`
	Title          string                    `gorm:"type:varchar(255);not null;index"`
	Status         integration.ProductStatus `gorm:"type:varchar(20);not null"`
	Price          decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	VariantCount   int                       `gorm:"not null;default:0"`
	Data           string                    `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (CanonicalProductModel) TableName() string {
	return "canonical_products"
}

// ToDomain decodes the stored product and stamps it with the row ID.
func (m *CanonicalProductModel) ToDomain() (*integration.CanonicalProduct, error) {
	var p integration.CanonicalProduct
	if err := json.Unmarshal([]byte(m.Data), &p); err != nil {
		return nil, fmt.Errorf("decode canonical product %s: %w", m.ID, err)
	}
	id := m.ID
	p.InternalID = &id
	return &p, nil
}

// CanonicalProductModelFromDomain creates a persistence model keyed by the
// product's identity ID.
func CanonicalProductModelFromDomain(p *integration.CanonicalProduct) (*CanonicalProductModel, error) {
	id := p.IdentityID()
	stored := p.WithInternalID(id)
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode canonical product %s: %w", id, err)
	}

	m := &CanonicalProductModel{
		BaseModel:      BaseModel{ID: id},
		SourcePlatform: p.SourcePlatform,
		ExternalID:     p.ExternalID,
		Title:          p.Title,
		Status:         p.Status,
		Price:          p.Price,
		VariantCount:   len(p.Variants),
		Data:           string(data),
	}
	m.stamp(time.Now())
	return m, nil
}
