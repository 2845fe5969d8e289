package integration

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// MappingStatus
// ---------------------------------------------------------------------------

// MappingStatus is the sync state recorded on a SyncMapping
type MappingStatus string

const (
	// MappingStatusSynced indicates the last push succeeded
	MappingStatusSynced MappingStatus = "synced"
	// MappingStatusPending indicates a push has not completed yet
	MappingStatusPending MappingStatus = "pending"
	// MappingStatusError indicates the last push failed
	MappingStatusError MappingStatus = "error"
)

// IsValid returns true if the status is valid
func (s MappingStatus) IsValid() bool {
	switch s {
	case MappingStatusSynced, MappingStatusPending, MappingStatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of MappingStatus
func (s MappingStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// SyncMapping Entity
// ---------------------------------------------------------------------------

// SyncMapping is the durable identity link between a canonical product and
// its representation on one platform. It is created after the first
// successful push and updated on every later sync of the same product.
type SyncMapping struct {
	// ID is the unique identifier of this mapping
	ID uuid.UUID
	// CanonicalProductID is the canonical product identity
	CanonicalProductID uuid.UUID
	// Platform identifies which platform this mapping is for
	Platform PlatformCode
	// PlatformProductID is the product ID on the platform
	PlatformProductID string
	// PlatformVariantIDs maps variant SKU to the platform variant ID
	PlatformVariantIDs map[string]string
	// SyncStatus is the result of the last sync
	SyncStatus MappingStatus
	// LastSyncedAt is when this mapping was last synced
	LastSyncedAt *time.Time
	// ErrorMessage contains the error from the last failed sync
	ErrorMessage string
	// CreatedAt is when this mapping was created
	CreatedAt time.Time
	// UpdatedAt is when this mapping was last updated
	UpdatedAt time.Time
}

// NewSyncMapping creates a new pending sync mapping
func NewSyncMapping(
	canonicalProductID uuid.UUID,
	platform PlatformCode,
	platformProductID string,
) (*SyncMapping, error) {
	if canonicalProductID == uuid.Nil {
		return nil, ErrMappingInvalidCanonicalID
	}
	if !platform.IsValid() {
		return nil, ErrMappingInvalidPlatformCode
	}
	if strings.TrimSpace(platformProductID) == "" {
		return nil, ErrMappingInvalidPlatformID
	}

	now := time.Now()
	return &SyncMapping{
		ID:                 uuid.New(),
		CanonicalProductID: canonicalProductID,
		Platform:           platform,
		PlatformProductID:  platformProductID,
		PlatformVariantIDs: make(map[string]string),
		SyncStatus:         MappingStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Validate validates the sync mapping
func (m *SyncMapping) Validate() error {
	if m.CanonicalProductID == uuid.Nil {
		return ErrMappingInvalidCanonicalID
	}
	if !m.Platform.IsValid() {
		return ErrMappingInvalidPlatformCode
	}
	if strings.TrimSpace(m.PlatformProductID) == "" {
		return ErrMappingInvalidPlatformID
	}
	return nil
}

// SetVariantID records the platform variant ID for a SKU
func (m *SyncMapping) SetVariantID(sku, platformVariantID string) error {
	if strings.TrimSpace(sku) == "" {
		return ErrMappingInvalidSKU
	}
	if strings.TrimSpace(platformVariantID) == "" {
		return ErrMappingInvalidPlatformID
	}
	if m.PlatformVariantIDs == nil {
		m.PlatformVariantIDs = make(map[string]string)
	}
	if m.PlatformVariantIDs[sku] == platformVariantID {
		return nil
	}
	m.PlatformVariantIDs[sku] = platformVariantID
	m.UpdatedAt = time.Now()
	return nil
}

// Repoint moves the mapping to a newly created platform product. Variant IDs
// belong to the old product and are cleared.
func (m *SyncMapping) Repoint(platformProductID string) error {
	if strings.TrimSpace(platformProductID) == "" {
		return ErrMappingInvalidPlatformID
	}
	m.PlatformProductID = platformProductID
	m.PlatformVariantIDs = make(map[string]string)
	m.UpdatedAt = time.Now()
	return nil
}

// VariantID returns the platform variant ID for a SKU
func (m *SyncMapping) VariantID(sku string) (string, bool) {
	id, ok := m.PlatformVariantIDs[sku]
	return id, ok
}

// RecordSyncSuccess records a successful sync
func (m *SyncMapping) RecordSyncSuccess() {
	now := time.Now()
	m.LastSyncedAt = &now
	m.SyncStatus = MappingStatusSynced
	m.ErrorMessage = ""
	m.UpdatedAt = now
}

// RecordSyncFailure records a failed sync. The platform IDs are kept so the
// next attempt still updates instead of creating a duplicate.
func (m *SyncMapping) RecordSyncFailure(errMsg string) {
	now := time.Now()
	m.LastSyncedAt = &now
	m.SyncStatus = MappingStatusError
	m.ErrorMessage = errMsg
	m.UpdatedAt = now
}

// Clone returns a deep copy of the mapping
func (m *SyncMapping) Clone() *SyncMapping {
	cp := *m
	cp.PlatformVariantIDs = maps.Clone(m.PlatformVariantIDs)
	if m.LastSyncedAt != nil {
		t := *m.LastSyncedAt
		cp.LastSyncedAt = &t
	}
	return &cp
}

// ---------------------------------------------------------------------------
// SyncMappingRepository Interface
// ---------------------------------------------------------------------------

// SyncMappingReader defines the interface for reading sync mappings
type SyncMappingReader interface {
	// FindByID finds a mapping by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SyncMapping, error)

	// FindByCanonicalAndPlatform finds the mapping used for upsert decisions
	FindByCanonicalAndPlatform(ctx context.Context, canonicalProductID uuid.UUID, platform PlatformCode) (*SyncMapping, error)

	// FindByCanonicalProduct returns all platform mappings of a canonical product
	FindByCanonicalProduct(ctx context.Context, canonicalProductID uuid.UUID) ([]SyncMapping, error)

	// FindByPlatformProduct finds a mapping by platform product ID
	FindByPlatformProduct(ctx context.Context, platform PlatformCode, platformProductID string) (*SyncMapping, error)
}

// SyncMappingWriter defines the interface for persisting sync mappings
type SyncMappingWriter interface {
	// Save creates or updates a mapping
	Save(ctx context.Context, mapping *SyncMapping) error

	// Delete deletes a mapping. The sync core never calls it; deletion
	// policy belongs to callers.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SyncMappingRepository defines the full interface for sync mapping persistence.
// Lookups return ErrMappingNotFound when nothing matches.
type SyncMappingRepository interface {
	SyncMappingReader
	SyncMappingWriter
}

// ---------------------------------------------------------------------------
// CanonicalProductStore Interface
// ---------------------------------------------------------------------------

// CanonicalProductStore persists imported canonical products.
type CanonicalProductStore interface {
	// Save creates or replaces the product keyed by its identity ID
	Save(ctx context.Context, product *CanonicalProduct) error

	// FindByID returns ErrCanonicalProductNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*CanonicalProduct, error)

	// FindBySource finds a product by source platform and external ID
	FindBySource(ctx context.Context, platform PlatformCode, externalID string) (*CanonicalProduct, error)

	// List returns one page of products and the total count
	List(ctx context.Context, filter ProductListFilter) ([]*CanonicalProduct, int64, error)
}

// ProductListFilter selects and orders a page of stored products. Unknown
// OrderBy values fall back to title; OrderDir is "asc" or "desc".
type ProductListFilter struct {
	Offset   int
	Limit    int
	OrderBy  string
	OrderDir string
}
