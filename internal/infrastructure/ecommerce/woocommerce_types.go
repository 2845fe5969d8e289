package ecommerce

import (
	"strings"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// WooCommerce REST v3 wire types
// ---------------------------------------------------------------------------

// WooProduct is a product as sent to and returned by /wp-json/wc/v3/products.
// Responses are bare objects with no envelope.
type WooProduct struct {
	ID               int64          `json:"id,omitempty"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug,omitempty"`
	Type             string         `json:"type"` // simple, variable, grouped, external
	Status           string         `json:"status"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	SKU              string         `json:"sku,omitempty"`
	Price            string         `json:"price,omitempty"` // read-only current price
	RegularPrice     string         `json:"regular_price,omitempty"`
	SalePrice        string         `json:"sale_price,omitempty"`
	ManageStock      WooFlexBool    `json:"manage_stock"`
	StockQuantity    *int           `json:"stock_quantity,omitempty"`
	Backorders       string         `json:"backorders,omitempty"` // no, notify, yes
	Weight           string         `json:"weight,omitempty"`
	Categories       []WooTerm      `json:"categories,omitempty"`
	Tags             []WooTerm      `json:"tags"`
	Images           []WooImage     `json:"images"`
	Attributes       []WooAttribute `json:"attributes"`
	Variations       []int64        `json:"variations,omitempty"` // read-only variation IDs
}

// Platform implements integration.RawProduct
func (p *WooProduct) Platform() integration.PlatformCode {
	return integration.PlatformWooCommerce
}

// ExternalID implements integration.RawProduct
func (p *WooProduct) ExternalID() string {
	return formatID(p.ID)
}

// WooVariation is a variation sub-resource of a variable product
type WooVariation struct {
	ID            int64                   `json:"id,omitempty"`
	SKU           string                  `json:"sku,omitempty"`
	Price         string                  `json:"price,omitempty"`
	RegularPrice  string                  `json:"regular_price,omitempty"`
	SalePrice     string                  `json:"sale_price,omitempty"`
	ManageStock   WooFlexBool             `json:"manage_stock"`
	StockQuantity *int                    `json:"stock_quantity,omitempty"`
	Backorders    string                  `json:"backorders,omitempty"`
	Weight        string                  `json:"weight,omitempty"`
	Attributes    []WooVariationAttribute `json:"attributes"`
	Image         *WooImage               `json:"image,omitempty"`
}

// Platform implements integration.RawVariant
func (v *WooVariation) Platform() integration.PlatformCode {
	return integration.PlatformWooCommerce
}

// ExternalID implements integration.RawVariant
func (v *WooVariation) ExternalID() string {
	return formatID(v.ID)
}

// VariantSKU implements integration.RawVariant
func (v *WooVariation) VariantSKU() string {
	return v.SKU
}

// WooTerm is a category or tag reference
type WooTerm struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// WooImage is a product image
type WooImage struct {
	ID  int64  `json:"id,omitempty"`
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// WooAttribute is a product attribute. Only attributes with Variation set
// drive variations.
type WooAttribute struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// WooVariationAttribute is the attribute value a variation is keyed by.
// WooCommerce keys by name (or global attribute ID), not by position.
type WooVariationAttribute struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

// WooFlexBool decodes WooCommerce flags that may be a JSON bool or a string
// such as "parent" (variation stock managed by the parent product).
type WooFlexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (b *WooFlexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "true", "1", "yes", "parent":
		*b = true
	default:
		*b = false
	}
	return nil
}

const (
	wooTypeSimple   = "simple"
	wooTypeVariable = "variable"

	wooBackordersNo     = "no"
	wooBackordersNotify = "notify"
	wooBackordersYes    = "yes"
)

// wooVariationsPage is the page size used when walking variations
const wooVariationsPage = 100

var (
	_ integration.RawProduct = (*WooProduct)(nil)
	_ integration.RawVariant = (*WooVariation)(nil)
)
