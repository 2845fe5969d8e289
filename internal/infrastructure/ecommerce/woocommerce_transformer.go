package ecommerce

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// WooCommerceTransformer converts between WooCommerce wire payloads and
// canonical products. Weights use the store-wide unit.
type WooCommerceTransformer struct {
	weightUnit integration.WeightUnit
}

// NewWooCommerceTransformer creates a WooCommerce transformer. An unknown
// weight unit falls back to kilograms.
func NewWooCommerceTransformer(weightUnit string) *WooCommerceTransformer {
	unit := integration.WeightUnitKilogram
	if u := integration.ParseWeightUnit(weightUnit); u != nil {
		unit = *u
	}
	return &WooCommerceTransformer{weightUnit: unit}
}

// Platform returns the platform code this transformer handles
func (t *WooCommerceTransformer) Platform() integration.PlatformCode {
	return integration.PlatformWooCommerce
}

// NeedsVariantFetch reports whether the product has variation sub-resources.
func (t *WooCommerceTransformer) NeedsVariantFetch(raw integration.RawProduct) bool {
	wp, ok := raw.(*WooProduct)
	return ok && wp != nil && wp.Type == wooTypeVariable && len(wp.Variations) > 0
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

// Normalize converts a WooCommerce product and its already-fetched
// variations into a canonical product.
func (t *WooCommerceTransformer) Normalize(raw integration.RawProduct, variants []integration.RawVariant) (*integration.CanonicalProduct, error) {
	wp, ok := raw.(*WooProduct)
	if !ok || wp == nil {
		return nil, integration.NewTransformationError(integration.PlatformWooCommerce, "payload", fmt.Sprintf("expected *WooProduct, got %T", raw))
	}

	variations := make([]*WooVariation, 0, len(variants))
	for _, rv := range variants {
		v, ok := rv.(*WooVariation)
		if !ok || v == nil {
			return nil, integration.NewTransformationError(integration.PlatformWooCommerce, "variants", fmt.Sprintf("expected *WooVariation, got %T", rv))
		}
		variations = append(variations, v)
	}

	description := PlainText(wp.Description)
	if description == "" {
		description = PlainText(wp.ShortDescription)
	}

	price, compareAt := wooPricing(wp.Price, wp.RegularPrice, wp.SalePrice)

	inventory := integration.Inventory{
		Tracked:        bool(wp.ManageStock),
		AllowBackorder: wooBackordersToCanonical(wp.Backorders),
	}
	if wp.StockQuantity != nil {
		inventory.Quantity = *wp.StockQuantity
	}

	var variationAttrs []WooAttribute
	if wp.Type == wooTypeVariable {
		for _, a := range wp.Attributes {
			if a.Variation {
				variationAttrs = append(variationAttrs, a)
			}
		}
	}
	options := make([]integration.Option, 0, len(variationAttrs))
	for i, a := range variationAttrs {
		options = append(options, integration.Option{Name: a.Name, Position: i + 1, Values: a.Options})
	}

	var canonicalVariants []integration.Variant
	if len(variations) > 0 {
		canonicalVariants = make([]integration.Variant, 0, len(variations))
		for _, v := range variations {
			canonicalVariants = append(canonicalVariants, t.variationToCanonical(v, variationAttrs))
		}
	} else {
		// simple product: its single variant is the product itself
		sv := integration.Variant{
			SKU:               strings.TrimSpace(wp.SKU),
			Price:             price,
			CompareAtPrice:    compareAt,
			InventoryQuantity: inventory.Quantity,
			InventoryTracked:  inventory.Tracked,
			Weight:            parseDecimalPtr(wp.Weight),
		}
		if sv.Weight != nil {
			unit := t.weightUnit
			sv.WeightUnit = &unit
		}
		canonicalVariants = []integration.Variant{sv}
	}

	tags := make([]string, 0, len(wp.Tags))
	for _, tag := range wp.Tags {
		tags = append(tags, tag.Name)
	}

	var productType string
	if len(wp.Categories) > 0 {
		productType = wp.Categories[0].Name
	}

	images := make([]integration.Image, 0, len(wp.Images))
	for i, img := range wp.Images {
		pos := i
		images = append(images, integration.Image{Src: img.Src, Alt: img.Alt, Position: &pos})
	}

	var metadata map[string]any
	if wp.Slug != "" {
		metadata = map[string]any{"woocommerce_slug": wp.Slug}
	}

	return integration.BuildCanonicalProduct(integration.ProductDraft{
		ExternalID:     wp.ExternalID(),
		SourcePlatform: integration.PlatformWooCommerce,
		Title:          wp.Name,
		Description:    description,
		Price:          price,
		CompareAtPrice: compareAt,
		ProductType:    productType,
		Tags:           tags,
		Status:         wooStatusToCanonical(wp.Status),
		Inventory:      inventory,
		Images:         images,
		Variants:       canonicalVariants,
		Options:        options,
		Metadata:       metadata,
	})
}

// variationToCanonical re-indexes name-keyed variation attributes into
// positional option slots.
func (t *WooCommerceTransformer) variationToCanonical(v *WooVariation, attrs []WooAttribute) integration.Variant {
	price, compareAt := wooPricing(v.Price, v.RegularPrice, v.SalePrice)
	cv := integration.Variant{
		ID:               v.ExternalID(),
		SKU:              strings.TrimSpace(v.SKU),
		Price:            price,
		CompareAtPrice:   compareAt,
		InventoryTracked: bool(v.ManageStock),
		Weight:           parseDecimalPtr(v.Weight),
	}
	if v.StockQuantity != nil {
		cv.InventoryQuantity = *v.StockQuantity
	}
	if cv.Weight != nil {
		unit := t.weightUnit
		cv.WeightUnit = &unit
	}
	for _, va := range v.Attributes {
		idx := wooAttributeIndex(attrs, va)
		if idx < 0 || idx >= integration.MaxOptions {
			continue
		}
		value := va.Option
		cv.SetOptionValue(idx+1, &value)
	}
	return cv
}

// wooAttributeIndex finds the option position of a variation attribute,
// matching global attribute IDs first and names otherwise.
func wooAttributeIndex(attrs []WooAttribute, va WooVariationAttribute) int {
	if va.ID != 0 {
		for i, a := range attrs {
			if a.ID == va.ID {
				return i
			}
		}
	}
	name := strings.TrimSpace(va.Name)
	for i, a := range attrs {
		if strings.EqualFold(strings.TrimSpace(a.Name), name) {
			return i
		}
	}
	return -1
}

// wooPricing resolves the current price (price, else sale, else regular) and
// keeps the regular price as compare-at only when it is higher.
func wooPricing(price, regular, sale string) (decimal.Decimal, *decimal.Decimal) {
	var current decimal.Decimal
	switch {
	case strings.TrimSpace(price) != "":
		current = ParseDecimal(price)
	case strings.TrimSpace(sale) != "":
		current = ParseDecimal(sale)
	default:
		current = ParseDecimal(regular)
	}
	if reg := parseDecimalPtr(regular); reg != nil && reg.GreaterThan(current) {
		return current, reg
	}
	return current, nil
}

// ---------------------------------------------------------------------------
// Denormalize
// ---------------------------------------------------------------------------

// Denormalize converts a canonical product into a WooCommerce payload. A
// variable product's variations are returned separately and must be created
// after the parent exists. Vendor and product type have no WooCommerce slot.
func (t *WooCommerceTransformer) Denormalize(p *integration.CanonicalProduct) (*integration.Denormalized, error) {
	if p == nil {
		return nil, integration.NewTransformationError(integration.PlatformWooCommerce, "product", "nil canonical product")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, integration.NewTransformationError(integration.PlatformWooCommerce, "title", "required")
	}

	wp := &WooProduct{
		Name:        p.Title,
		Status:      canonicalStatusToWoo(p.Status),
		Description: richText(p.Description),
		Backorders:  canonicalBackordersToWoo(p.Inventory.AllowBackorder),
		Tags:        make([]WooTerm, 0, len(p.Tags)),
		Images:      make([]WooImage, 0, len(p.Images)),
		Attributes:  make([]WooAttribute, 0, len(p.Options)),
	}
	if slug, ok := p.Metadata["woocommerce_slug"].(string); ok {
		wp.Slug = slug
	}
	for _, tag := range p.Tags {
		wp.Tags = append(wp.Tags, WooTerm{Name: tag})
	}
	for _, img := range p.Images {
		wp.Images = append(wp.Images, WooImage{Src: img.Src, Alt: img.Alt})
	}

	out := &integration.Denormalized{Product: wp}

	if p.IsVariable() {
		wp.Type = wooTypeVariable
		out.Kind = integration.ProductKindVariable
		for i, o := range p.Options {
			wp.Attributes = append(wp.Attributes, WooAttribute{
				Name:      o.Name,
				Position:  i,
				Visible:   true,
				Variation: true,
				Options:   append([]string(nil), o.Values...),
			})
		}
		out.Variants = make([]integration.RawVariant, 0, len(p.Variants))
		for _, v := range p.Variants {
			out.Variants = append(out.Variants, t.variantToWoo(v, p.Options, wp.Backorders))
		}
	} else {
		wp.Type = wooTypeSimple
		out.Kind = integration.ProductKindSimple
		v := p.PrimaryVariant()
		wp.SKU = v.SKU
		wp.RegularPrice, wp.SalePrice = wooPriceFields(v.Price, v.CompareAtPrice)
		wp.ManageStock = WooFlexBool(v.InventoryTracked)
		if v.InventoryTracked {
			qty := v.InventoryQuantity
			wp.StockQuantity = &qty
		}
		wp.Weight = t.weightString(v)
	}

	if p.Vendor != "" {
		out.Dropped = append(out.Dropped, "vendor")
	}
	if p.ProductType != "" {
		out.Dropped = append(out.Dropped, "product_type")
	}
	return out, nil
}

func (t *WooCommerceTransformer) variantToWoo(v integration.Variant, options []integration.Option, backorders string) *WooVariation {
	wv := &WooVariation{
		SKU:         v.SKU,
		ManageStock: WooFlexBool(v.InventoryTracked),
		Backorders:  backorders,
		Weight:      t.weightString(v),
		Attributes:  make([]WooVariationAttribute, 0, len(options)),
	}
	wv.RegularPrice, wv.SalePrice = wooPriceFields(v.Price, v.CompareAtPrice)
	if v.InventoryTracked {
		qty := v.InventoryQuantity
		wv.StockQuantity = &qty
	}
	for i, o := range options {
		if val := v.OptionValue(i + 1); val != nil {
			wv.Attributes = append(wv.Attributes, WooVariationAttribute{Name: o.Name, Option: *val})
		}
	}
	return wv
}

// wooPriceFields maps price and compare-at onto regular and sale prices.
func wooPriceFields(price decimal.Decimal, compareAt *decimal.Decimal) (regular, sale string) {
	if compareAt != nil && compareAt.GreaterThan(price) {
		return formatPrice(*compareAt), formatPrice(price)
	}
	return formatPrice(price), ""
}

// weightString renders a variant weight in the store unit.
func (t *WooCommerceTransformer) weightString(v integration.Variant) string {
	if v.Weight == nil {
		return ""
	}
	w := *v.Weight
	if v.WeightUnit != nil && *v.WeightUnit != t.weightUnit {
		w = convertWeight(w, *v.WeightUnit, t.weightUnit)
	}
	return w.String()
}

var gramsPerUnit = map[integration.WeightUnit]decimal.Decimal{
	integration.WeightUnitGram:     decimal.NewFromInt(1),
	integration.WeightUnitKilogram: decimal.NewFromInt(1000),
	integration.WeightUnitPound:    decimal.RequireFromString("453.59237"),
	integration.WeightUnitOunce:    decimal.RequireFromString("28.349523125"),
}

func convertWeight(w decimal.Decimal, from, to integration.WeightUnit) decimal.Decimal {
	return w.Mul(gramsPerUnit[from]).Div(gramsPerUnit[to]).Round(3)
}

// ---------------------------------------------------------------------------
// Status and backorder tables
// ---------------------------------------------------------------------------

// wooStatusToCanonical maps WooCommerce post statuses. Unknown statuses
// become draft, never active.
func wooStatusToCanonical(status string) integration.ProductStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "publish":
		return integration.ProductStatusActive
	case "pending":
		return integration.ProductStatusDraft
	case "private":
		return integration.ProductStatusArchived
	case "draft":
		return integration.ProductStatusDraft
	default:
		return integration.ProductStatusDraft
	}
}

func canonicalStatusToWoo(status integration.ProductStatus) string {
	switch status {
	case integration.ProductStatusActive:
		return "publish"
	case integration.ProductStatusArchived:
		return "private"
	default:
		return "draft"
	}
}

func wooBackordersToCanonical(b string) *bool {
	var allow bool
	switch b {
	case wooBackordersYes, wooBackordersNotify:
		allow = true
	case wooBackordersNo:
		allow = false
	default:
		return nil
	}
	return &allow
}

func canonicalBackordersToWoo(allow *bool) string {
	if allow == nil {
		return ""
	}
	if *allow {
		return wooBackordersYes
	}
	return wooBackordersNo
}

var _ integration.Transformer = (*WooCommerceTransformer)(nil)
