package integration

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
)

// ErrCanonicalStoreNotConfigured is returned by product queries when the
// service runs without a canonical store
var ErrCanonicalStoreNotConfigured = errors.New("integration: canonical store not configured")

// ---------------------------------------------------------------------------
// Sync Mapping DTOs
// ---------------------------------------------------------------------------

// SyncMappingResponse represents a sync mapping in API responses
type SyncMappingResponse struct {
	ID                  uuid.UUID                 `json:"id"`
	CanonicalProductID  uuid.UUID                 `json:"canonical_product_id"`
	Platform            integration.PlatformCode  `json:"platform"`
	PlatformDisplayName string                    `json:"platform_display_name"`
	PlatformProductID   string                    `json:"platform_product_id"`
	Variants            []VariantMappingResponse  `json:"variants"`
	SyncStatus          integration.MappingStatus `json:"sync_status"`
	LastSyncedAt        *time.Time                `json:"last_synced_at,omitempty"`
	ErrorMessage        string                    `json:"error_message,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// VariantMappingResponse is one SKU to platform variant ID pair
type VariantMappingResponse struct {
	SKU               string `json:"sku"`
	PlatformVariantID string `json:"platform_variant_id"`
}

// ProductListQuery asks for one page of stored canonical products.
// Zero Page and PageSize select the first page of 20.
type ProductListQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// CanonicalProductListResponse is a page of stored canonical products
type CanonicalProductListResponse struct {
	Items    []*integration.CanonicalProduct `json:"items"`
	Total    int64                           `json:"total"`
	Page     int                             `json:"page"`
	PageSize int                             `json:"page_size"`
}

// ---------------------------------------------------------------------------
// Conversion functions
// ---------------------------------------------------------------------------

// ToSyncMappingResponse converts a domain SyncMapping. Variants are sorted by SKU.
func ToSyncMappingResponse(m *integration.SyncMapping) SyncMappingResponse {
	variants := make([]VariantMappingResponse, 0, len(m.PlatformVariantIDs))
	for _, sku := range slices.Sorted(maps.Keys(m.PlatformVariantIDs)) {
		variants = append(variants, VariantMappingResponse{SKU: sku, PlatformVariantID: m.PlatformVariantIDs[sku]})
	}
	return SyncMappingResponse{
		ID:                  m.ID,
		CanonicalProductID:  m.CanonicalProductID,
		Platform:            m.Platform,
		PlatformDisplayName: m.Platform.DisplayName(),
		PlatformProductID:   m.PlatformProductID,
		Variants:            variants,
		SyncStatus:          m.SyncStatus,
		LastSyncedAt:        m.LastSyncedAt,
		ErrorMessage:        m.ErrorMessage,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// ToSyncMappingResponses converts mappings, sorted by platform code
func ToSyncMappingResponses(mappings []integration.SyncMapping) []SyncMappingResponse {
	out := make([]SyncMappingResponse, 0, len(mappings))
	for i := range mappings {
		out = append(out, ToSyncMappingResponse(&mappings[i]))
	}
	slices.SortFunc(out, func(a, b SyncMappingResponse) int {
		return cmp.Compare(a.Platform, b.Platform)
	})
	return out
}


// ---------------------------------------------------------------------------
// Snapshot DTOs
// ---------------------------------------------------------------------------

// SnapshotResponse describes a catalog snapshot in object storage
type SnapshotResponse struct {
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	Products    int        `json:"products,omitempty"`
	SizeBytes   int64      `json:"size_bytes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DownloadURL string     `json:"download_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
