package testutil

import (
	"testing"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ClassicTeeID is the Shopify ID of the ClassicTee fixture.
const ClassicTeeID int64 = 632910392

// ClassicTee returns a two-variant Shopify product.
func ClassicTee() *ecommerce.ShopifyProduct {
	small, medium, red := "S", "M", "Red"
	managed := "shopify"
	return &ecommerce.ShopifyProduct{
		ID:          ClassicTeeID,
		Title:       "Classic Tee",
		BodyHTML:    "<p>Soft <strong>cotton</strong> tee.</p>",
		Vendor:      "Acme",
		ProductType: "Shirts",
		Handle:      "classic-tee",
		Status:      "active",
		Tags:        "summer, cotton",
		Options: []ecommerce.ShopifyOption{
			{Name: "Size", Position: 1, Values: []string{small, medium}},
			{Name: "Color", Position: 2, Values: []string{red}},
		},
		Variants: []ecommerce.ShopifyVariant{
			{ID: 1, SKU: "TEE-S-RED", Price: "12.00", Option1: &small, Option2: &red,
				InventoryQuantity: 3, InventoryManagement: &managed, InventoryPolicy: "deny"},
			{ID: 2, SKU: "TEE-M-RED", Price: "10.00", Option1: &medium, Option2: &red,
				InventoryQuantity: 4, InventoryManagement: &managed, InventoryPolicy: "deny"},
		},
		Images: []ecommerce.ShopifyImage{{Src: "https://cdn.example.com/tee.jpg", Position: 1}},
	}
}

// SimpleMug returns a Shopify product with only the implicit default variant.
func SimpleMug(id int64) *ecommerce.ShopifyProduct {
	title := "Default Title"
	return &ecommerce.ShopifyProduct{
		ID:       id,
		Title:    "Enamel Mug",
		BodyHTML: "Camp mug",
		Status:   "active",
		Options:  []ecommerce.ShopifyOption{{Name: "Title", Position: 1, Values: []string{title}}},
		Variants: []ecommerce.ShopifyVariant{{ID: id + 1, SKU: "MUG-1", Price: "8.50", Option1: &title}},
	}
}

// NewCanonicalProduct builds a valid two-variant canonical product through
// the domain constructor.
func NewCanonicalProduct(t *testing.T, platform integration.PlatformCode, externalID, title string) *integration.CanonicalProduct {
	t.Helper()

	small, large := "S", "L"
	p, err := integration.BuildCanonicalProduct(integration.ProductDraft{
		ExternalID:     externalID,
		SourcePlatform: platform,
		Title:          title,
		Description:    "Soft cotton",
		Tags:           []string{"cotton"},
		Status:         integration.ProductStatusActive,
		Options:        []integration.Option{{Name: "Size", Position: 1, Values: []string{small, large}}},
		Variants: []integration.Variant{
			{SKU: externalID + "-S", Price: decimal.RequireFromString("19.99"), Option1: &small, InventoryQuantity: 2, InventoryTracked: true},
			{SKU: externalID + "-L", Price: decimal.RequireFromString("24.50"), Option1: &large, InventoryQuantity: 5, InventoryTracked: true},
		},
	})
	require.NoError(t, err)
	return p
}

// NewSyncMapping builds a mapping for the canonical identity of a source product.
func NewSyncMapping(t *testing.T, source integration.PlatformCode, sourceID string, dst integration.PlatformCode, dstID string) *integration.SyncMapping {
	t.Helper()

	m, err := integration.NewSyncMapping(integration.CanonicalIDFor(source, sourceID), dst, dstID)
	require.NoError(t, err)
	return m
}
