package ecommerce

import (
	"github.com/catalogsync/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Shopify Admin REST wire types
// ---------------------------------------------------------------------------

// ShopifyProduct is a product as sent to and returned by the Admin REST API
type ShopifyProduct struct {
	ID          int64            `json:"id,omitempty"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Handle      string           `json:"handle,omitempty"`
	Status      string           `json:"status"`
	Tags        string           `json:"tags"` // comma-joined
	Variants    []ShopifyVariant `json:"variants"`
	Options     []ShopifyOption  `json:"options,omitempty"`
	Images      []ShopifyImage   `json:"images"`
	CreatedAt   string           `json:"created_at,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

// Platform implements integration.RawProduct
func (p *ShopifyProduct) Platform() integration.PlatformCode {
	return integration.PlatformShopify
}

// ExternalID implements integration.RawProduct
func (p *ShopifyProduct) ExternalID() string {
	return formatID(p.ID)
}

// EmbeddedVariants implements integration.VariantCarrier
func (p *ShopifyProduct) EmbeddedVariants() []integration.RawVariant {
	out := make([]integration.RawVariant, len(p.Variants))
	for i := range p.Variants {
		out[i] = &p.Variants[i]
	}
	return out
}

// ShopifyVariant is a product variant. Prices are string-encoded decimals.
type ShopifyVariant struct {
	ID                  int64    `json:"id,omitempty"`
	ProductID           int64    `json:"product_id,omitempty"`
	Title               string   `json:"title,omitempty"`
	SKU                 string   `json:"sku"`
	Price               string   `json:"price"`
	CompareAtPrice      *string  `json:"compare_at_price"`
	Position            int      `json:"position,omitempty"`
	Option1             *string  `json:"option1"`
	Option2             *string  `json:"option2"`
	Option3             *string  `json:"option3"`
	InventoryQuantity   int      `json:"inventory_quantity"`
	InventoryManagement *string  `json:"inventory_management"` // "shopify" when tracked
	InventoryPolicy     string   `json:"inventory_policy,omitempty"`
	Weight              *float64 `json:"weight,omitempty"`
	WeightUnit          string   `json:"weight_unit,omitempty"`
}

// Platform implements integration.RawVariant
func (v *ShopifyVariant) Platform() integration.PlatformCode {
	return integration.PlatformShopify
}

// ExternalID implements integration.RawVariant
func (v *ShopifyVariant) ExternalID() string {
	return formatID(v.ID)
}

// VariantSKU implements integration.RawVariant
func (v *ShopifyVariant) VariantSKU() string {
	return v.SKU
}

// ShopifyOption is a product option (at most 3 per product)
type ShopifyOption struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name"`
	Position int      `json:"position,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// ShopifyImage is a product image
type ShopifyImage struct {
	ID       int64   `json:"id,omitempty"`
	Src      string  `json:"src"`
	Alt      *string `json:"alt,omitempty"`
	Position int     `json:"position,omitempty"`
}

const (
	shopifyInventoryManaged = "shopify"
	shopifyPolicyContinue   = "continue"
	shopifyPolicyDeny       = "deny"

	// Shopify gives option-less products an implicit "Title" option
	shopifyDefaultOptionName  = "Title"
	shopifyDefaultOptionValue = "Default Title"
)

// ---------------------------------------------------------------------------
// Envelopes
// ---------------------------------------------------------------------------

type shopifyProductEnvelope struct {
	Product *ShopifyProduct `json:"product"`
}

type shopifyProductsEnvelope struct {
	Products []*ShopifyProduct `json:"products"`
}

type shopifyVariantEnvelope struct {
	Variant *ShopifyVariant `json:"variant"`
}

type shopifyVariantsEnvelope struct {
	Variants []*ShopifyVariant `json:"variants"`
}

type shopifyShopEnvelope struct {
	Shop struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Domain string `json:"domain"`
	} `json:"shop"`
}

var (
	_ integration.RawProduct     = (*ShopifyProduct)(nil)
	_ integration.VariantCarrier = (*ShopifyProduct)(nil)
	_ integration.RawVariant     = (*ShopifyVariant)(nil)
)
