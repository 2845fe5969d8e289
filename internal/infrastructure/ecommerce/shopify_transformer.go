package ecommerce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// ShopifyTransformer converts between Shopify wire payloads and canonical products
type ShopifyTransformer struct{}

// NewShopifyTransformer creates a Shopify transformer
func NewShopifyTransformer() *ShopifyTransformer {
	return &ShopifyTransformer{}
}

// Platform returns the platform code this transformer handles
func (t *ShopifyTransformer) Platform() integration.PlatformCode {
	return integration.PlatformShopify
}

// NeedsVariantFetch is always false: Shopify embeds variants in the product.
func (t *ShopifyTransformer) NeedsVariantFetch(integration.RawProduct) bool {
	return false
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

// Normalize converts a Shopify product into a canonical product. When
// variants is non-empty it replaces the embedded variant list.
func (t *ShopifyTransformer) Normalize(raw integration.RawProduct, variants []integration.RawVariant) (*integration.CanonicalProduct, error) {
	sp, ok := raw.(*ShopifyProduct)
	if !ok || sp == nil {
		return nil, integration.NewTransformationError(integration.PlatformShopify, "payload", fmt.Sprintf("expected *ShopifyProduct, got %T", raw))
	}

	rawVariants := sp.Variants
	if len(variants) > 0 {
		rawVariants = make([]ShopifyVariant, 0, len(variants))
		for _, rv := range variants {
			v, ok := rv.(*ShopifyVariant)
			if !ok || v == nil {
				return nil, integration.NewTransformationError(integration.PlatformShopify, "variants", fmt.Sprintf("expected *ShopifyVariant, got %T", rv))
			}
			rawVariants = append(rawVariants, *v)
		}
	}

	options := shopifyOptionsToCanonical(sp.Options)
	implicitTitle := isShopifyDefaultOption(sp.Options)

	canonicalVariants := make([]integration.Variant, 0, len(rawVariants))
	for _, v := range rawVariants {
		cv := integration.Variant{
			ID:                formatID(v.ID),
			SKU:               strings.TrimSpace(v.SKU),
			Price:             ParseDecimal(v.Price),
			InventoryQuantity: v.InventoryQuantity,
			InventoryTracked:  v.InventoryManagement != nil && *v.InventoryManagement != "",
			WeightUnit:        integration.ParseWeightUnit(v.WeightUnit),
		}
		if v.CompareAtPrice != nil {
			cv.CompareAtPrice = parseDecimalPtr(*v.CompareAtPrice)
		}
		if v.Weight != nil {
			w := decimal.NewFromFloat(*v.Weight)
			cv.Weight = &w
		}
		if !implicitTitle {
			cv.Option1, cv.Option2, cv.Option3 = v.Option1, v.Option2, v.Option3
		}
		canonicalVariants = append(canonicalVariants, cv)
	}

	inventory := integration.Inventory{}
	if len(rawVariants) > 0 {
		inventory.AllowBackorder = shopifyPolicyToBackorder(rawVariants[0].InventoryPolicy)
	}

	images := make([]integration.Image, 0, len(sp.Images))
	for _, img := range sp.Images {
		ci := integration.Image{Src: img.Src}
		if img.Alt != nil {
			ci.Alt = *img.Alt
		}
		if img.Position > 0 {
			pos := img.Position
			ci.Position = &pos
		}
		images = append(images, ci)
	}

	var metadata map[string]any
	if sp.Handle != "" {
		metadata = map[string]any{"shopify_handle": sp.Handle}
	}

	return integration.BuildCanonicalProduct(integration.ProductDraft{
		ExternalID:     sp.ExternalID(),
		SourcePlatform: integration.PlatformShopify,
		Title:          sp.Title,
		Description:    PlainText(sp.BodyHTML),
		Vendor:         sp.Vendor,
		ProductType:    sp.ProductType,
		Tags:           SplitTags(sp.Tags),
		Status:         shopifyStatusToCanonical(sp.Status),
		Inventory:      inventory,
		Images:         images,
		Variants:       canonicalVariants,
		Options:        options,
		Metadata:       metadata,
	})
}

// shopifyOptionsToCanonical orders options by position. The implicit
// Title/Default Title option collapses to no options.
func shopifyOptionsToCanonical(in []ShopifyOption) []integration.Option {
	if isShopifyDefaultOption(in) {
		return nil
	}
	sorted := make([]ShopifyOption, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	out := make([]integration.Option, 0, len(sorted))
	for i, o := range sorted {
		out = append(out, integration.Option{Name: o.Name, Position: i + 1, Values: o.Values})
	}
	return out
}

func isShopifyDefaultOption(in []ShopifyOption) bool {
	return len(in) == 1 &&
		in[0].Name == shopifyDefaultOptionName &&
		len(in[0].Values) <= 1 &&
		(len(in[0].Values) == 0 || in[0].Values[0] == shopifyDefaultOptionValue)
}

// ---------------------------------------------------------------------------
// Denormalize
// ---------------------------------------------------------------------------

// Denormalize converts a canonical product into a Shopify product payload.
// Products with more than ShopifyMaxVariants variants are rejected.
func (t *ShopifyTransformer) Denormalize(p *integration.CanonicalProduct) (*integration.Denormalized, error) {
	if p == nil {
		return nil, integration.NewTransformationError(integration.PlatformShopify, "product", "nil canonical product")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, integration.NewTransformationError(integration.PlatformShopify, "title", "required")
	}
	if len(p.Variants) > ShopifyMaxVariants {
		return nil, fmt.Errorf("%w: %d variants, shopify allows %d", integration.ErrVariantLimitExceeded, len(p.Variants), ShopifyMaxVariants)
	}

	sp := &ShopifyProduct{
		Title:       p.Title,
		BodyHTML:    richText(p.Description),
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      canonicalStatusToShopify(p.Status),
		Tags:        strings.Join(p.Tags, ", "),
		Images:      make([]ShopifyImage, 0, len(p.Images)),
	}
	if handle, ok := p.Metadata["shopify_handle"].(string); ok {
		sp.Handle = handle
	}

	for _, img := range p.Images {
		si := ShopifyImage{Src: img.Src}
		if img.Alt != "" {
			alt := img.Alt
			si.Alt = &alt
		}
		if img.Position != nil {
			si.Position = *img.Position
		}
		sp.Images = append(sp.Images, si)
	}

	policy := shopifyPolicyDeny
	if p.Inventory.AllowBackorder != nil && *p.Inventory.AllowBackorder {
		policy = shopifyPolicyContinue
	}

	kind := integration.ProductKindSimple
	if p.IsVariable() {
		kind = integration.ProductKindVariable
		for _, o := range p.Options {
			sp.Options = append(sp.Options, ShopifyOption{Name: o.Name, Position: o.Position, Values: append([]string(nil), o.Values...)})
		}
		for i, v := range p.Variants {
			sv := canonicalVariantToShopify(v, policy)
			sv.Position = i + 1
			sp.Variants = append(sp.Variants, sv)
		}
	} else {
		sv := canonicalVariantToShopify(p.PrimaryVariant(), policy)
		sv.Option1, sv.Option2, sv.Option3 = nil, nil, nil
		sp.Variants = []ShopifyVariant{sv}
	}

	var dropped []string
	if len(p.Metadata) > 0 {
		for k := range p.Metadata {
			if k != "shopify_handle" {
				dropped = append(dropped, "metadata")
				break
			}
		}
	}

	return &integration.Denormalized{Product: sp, Kind: kind, Dropped: dropped}, nil
}

func canonicalVariantToShopify(v integration.Variant, policy string) ShopifyVariant {
	sv := ShopifyVariant{
		SKU:               v.SKU,
		Price:             formatPrice(v.Price),
		CompareAtPrice:    formatPricePtr(v.CompareAtPrice),
		Option1:           v.Option1,
		Option2:           v.Option2,
		Option3:           v.Option3,
		InventoryQuantity: v.InventoryQuantity,
		InventoryPolicy:   policy,
	}
	if v.InventoryTracked {
		managed := shopifyInventoryManaged
		sv.InventoryManagement = &managed
	}
	if v.Weight != nil {
		w := v.Weight.InexactFloat64()
		sv.Weight = &w
	}
	if v.WeightUnit != nil {
		sv.WeightUnit = string(*v.WeightUnit)
	}
	return sv
}

// ---------------------------------------------------------------------------
// Status and policy tables
// ---------------------------------------------------------------------------

// shopifyStatusToCanonical maps Shopify statuses. They are already canonical;
// anything else is a draft.
func shopifyStatusToCanonical(status string) integration.ProductStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active":
		return integration.ProductStatusActive
	case "archived":
		return integration.ProductStatusArchived
	case "draft":
		return integration.ProductStatusDraft
	default:
		return integration.ProductStatusDraft
	}
}

func canonicalStatusToShopify(status integration.ProductStatus) string {
	switch status {
	case integration.ProductStatusActive:
		return "active"
	case integration.ProductStatusArchived:
		return "archived"
	default:
		return "draft"
	}
}

func shopifyPolicyToBackorder(policy string) *bool {
	var allow bool
	switch policy {
	case shopifyPolicyContinue:
		allow = true
	case shopifyPolicyDeny:
		allow = false
	default:
		return nil
	}
	return &allow
}

var _ integration.Transformer = (*ShopifyTransformer)(nil)
