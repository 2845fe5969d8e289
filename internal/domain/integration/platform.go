package integration

import (
	"context"
	"strings"
)

// ---------------------------------------------------------------------------
// PlatformCode represents the type of e-commerce platform
// ---------------------------------------------------------------------------

// PlatformCode represents the type of e-commerce platform
type PlatformCode string

const (
	// PlatformShopify represents a Shopify store (Admin REST API)
	PlatformShopify PlatformCode = "SHOPIFY"
	// PlatformWooCommerce represents a WooCommerce store (WC REST API v3)
	PlatformWooCommerce PlatformCode = "WOOCOMMERCE"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformShopify, PlatformWooCommerce:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformShopify:
		return "Shopify"
	case PlatformWooCommerce:
		return "WooCommerce"
	default:
		return string(c)
	}
}

// ParsePlatformCode parses a platform name case-insensitively.
// "woo" is accepted as shorthand for WooCommerce.
func ParsePlatformCode(s string) (PlatformCode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SHOPIFY":
		return PlatformShopify, nil
	case "WOOCOMMERCE", "WOO":
		return PlatformWooCommerce, nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// AllPlatforms returns every supported platform code
func AllPlatforms() []PlatformCode {
	return []PlatformCode{PlatformShopify, PlatformWooCommerce}
}

// ---------------------------------------------------------------------------
// Raw payloads
// ---------------------------------------------------------------------------

// RawProduct is a platform-native product payload. Each platform has its own
// strict wire type; canonical and wire types never share a structure.
type RawProduct interface {
	// Platform returns the platform the payload belongs to
	Platform() PlatformCode
	// ExternalID returns the platform's native ID as a string ("" when unsaved)
	ExternalID() string
}

// RawVariant is a platform-native variant (or variation) payload.
type RawVariant interface {
	Platform() PlatformCode
	ExternalID() string
	// VariantSKU returns the SKU used to key SyncMapping.PlatformVariantIDs
	VariantSKU() string
}

// VariantCarrier is implemented by raw products that embed their variants,
// so created variant IDs can be recorded without a second fetch.
type VariantCarrier interface {
	EmbeddedVariants() []RawVariant
}

// PageParams selects a page of products from a platform
type PageParams struct {
	// Page is the 1-indexed page for offset-paginated platforms
	Page int
	// PerPage is the page size
	PerPage int
	// Cursor is an opaque continuation token for cursor-paginated platforms
	Cursor string
	// Status filters by platform-native status (optional)
	Status string
	// IDs restricts the page to the given platform IDs (optional)
	IDs []string
}

// Normalized returns a copy with Page >= 1 and PerPage within [1, maxPerPage].
func (p PageParams) Normalized(defaultPerPage, maxPerPage int) PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// ProductPage is one page of raw products
type ProductPage struct {
	// Items are the raw products in platform order
	Items []RawProduct
	// NextCursor is the continuation token for cursor pagination
	NextCursor string
	// NextPage is the next page number for offset pagination (0 if none)
	NextPage int
	// HasMore reports whether another page exists
	HasMore bool
}

// Next returns the params for the page after p, or false when there is none.
func (pg *ProductPage) Next(p PageParams) (PageParams, bool) {
	if pg == nil || !pg.HasMore {
		return p, false
	}
	next := p
	if pg.NextCursor != "" {
		next.Cursor = pg.NextCursor
	}
	if pg.NextPage > 0 {
		next.Page = pg.NextPage
	}
	return next, true
}

// ---------------------------------------------------------------------------
// PlatformAdapter Port
// ---------------------------------------------------------------------------

// PlatformAdapter defines the product API of one e-commerce platform.
// Implementations return *UpstreamAPIError for non-2xx responses and
// *NetworkError for transport failures.
type PlatformAdapter interface {
	// PlatformCode returns the platform this adapter handles
	PlatformCode() PlatformCode

	// FetchOne retrieves a single product. A 404 matches ErrProductNotFound.
	FetchOne(ctx context.Context, id string) (RawProduct, error)

	// FetchMany retrieves a page of products
	FetchMany(ctx context.Context, params PageParams) (*ProductPage, error)

	// FetchVariants retrieves the variant sub-resources of a product
	FetchVariants(ctx context.Context, productID string) ([]RawVariant, error)

	// Create creates a product and returns the platform's stored version
	Create(ctx context.Context, payload RawProduct) (RawProduct, error)

	// Update updates a product and returns the platform's stored version
	Update(ctx context.Context, id string, payload RawProduct) (RawProduct, error)

	// CreateVariant creates a variant sub-resource under an existing product
	CreateVariant(ctx context.Context, productID string, payload RawVariant) (RawVariant, error)

	// TestConnection checks credentials and reachability. It never errors.
	TestConnection(ctx context.Context) bool
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// PlatformRegistry resolves adapters and transformers by platform code.
type PlatformRegistry interface {
	// Adapter returns the adapter or ErrAdapterNotConfigured
	Adapter(code PlatformCode) (PlatformAdapter, error)
	// Transformer returns the transformer or ErrTransformerNotConfigured
	Transformer(code PlatformCode) (Transformer, error)
	// Platforms lists platforms that have an adapter registered
	Platforms() []PlatformCode
}
