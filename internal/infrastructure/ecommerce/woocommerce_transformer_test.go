package ecommerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/backend/internal/domain/integration"
)

func sampleWooVariable() (*WooProduct, []integration.RawVariant) {
	product := &WooProduct{
		ID:               812,
		Name:             "Hoodie",
		Slug:             "hoodie",
		Type:             "variable",
		Status:           "publish",
		Description:      "",
		ShortDescription: "<p>Warm &amp; cosy</p>",
		Categories:       []WooTerm{{ID: 9, Name: "Clothing"}, {ID: 10, Name: "Winter"}},
		Tags:             []WooTerm{{ID: 1, Name: "winter"}, {ID: 2, Name: " "}, {ID: 3, Name: "winter"}},
		Images:           []WooImage{{Src: "https://shop.example.com/hoodie.jpg", Alt: "Hoodie"}},
		Attributes: []WooAttribute{
			{Name: "Brand", Variation: false, Options: []string{"Acme"}},
			{ID: 1, Name: "Color", Variation: true, Options: []string{"Blue", "Green"}},
			{Name: "Size", Variation: true, Options: []string{"M", "L"}},
		},
		Variations: []int64{100, 101},
	}
	variations := []integration.RawVariant{
		&WooVariation{
			ID: 100, SKU: "HD-M-BLUE", RegularPrice: "45.00", SalePrice: "40.00", Price: "40.00",
			ManageStock: true, StockQuantity: ptr(3), Weight: "0.6",
			// attributes keyed by name, in a different order than the product
			Attributes: []WooVariationAttribute{{Name: "Size", Option: "M"}, {ID: 1, Name: "Color", Option: "Blue"}},
		},
		&WooVariation{
			ID: 101, SKU: "HD-L-GREEN", RegularPrice: "48.00", Price: "48.00",
			ManageStock: false,
			Attributes:  []WooVariationAttribute{{Name: "size", Option: "L"}, {Name: "Color", Option: "Green"}},
		},
	}
	return product, variations
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

func TestWooCommerceTransformer_Normalize(t *testing.T) {
	tr := NewWooCommerceTransformer("kg")

	t.Run("pending simple product", func(t *testing.T) {
		p, err := tr.Normalize(&WooProduct{ID: 5, Name: "Poster", Type: "simple", Status: "pending", Price: "29.99"}, nil)
		require.NoError(t, err)
		assert.Equal(t, integration.ProductStatusDraft, p.Status)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("29.99")))
		require.Len(t, p.Variants, 1)
		assert.Empty(t, p.Options)
		assert.Nil(t, p.CompareAtPrice)
	})

	t.Run("variable product re-indexes attributes positionally", func(t *testing.T) {
		product, variations := sampleWooVariable()
		p, err := tr.Normalize(product, variations)
		require.NoError(t, err)

		assert.Equal(t, "812", p.ExternalID)
		assert.Equal(t, "Warm & cosy", p.Description)
		assert.Equal(t, integration.ProductStatusActive, p.Status)
		assert.Equal(t, "Clothing", p.ProductType)
		assert.Empty(t, p.Vendor)
		assert.Equal(t, []string{"winter"}, p.Tags)

		require.Len(t, p.Options, 2)
		assert.Equal(t, "Color", p.Options[0].Name)
		assert.Equal(t, "Size", p.Options[1].Name)

		require.Len(t, p.Variants, 2)
		assert.Equal(t, "Blue", *p.Variants[0].Option1)
		assert.Equal(t, "M", *p.Variants[0].Option2)
		assert.Equal(t, "Green", *p.Variants[1].Option1)
		assert.Equal(t, "L", *p.Variants[1].Option2)

		assert.True(t, p.Price.Equal(decimal.NewFromInt(40)))
		require.NotNil(t, p.Variants[0].CompareAtPrice)
		assert.True(t, p.Variants[0].CompareAtPrice.Equal(decimal.NewFromInt(45)))
		assert.Nil(t, p.Variants[1].CompareAtPrice)
		assert.Equal(t, 3, p.Inventory.Quantity)
		assert.True(t, p.Inventory.Tracked)
		require.NotNil(t, p.Variants[0].WeightUnit)
		assert.Equal(t, integration.WeightUnitKilogram, *p.Variants[0].WeightUnit)
		assert.Equal(t, "100", p.Variants[0].ID)
		assert.NoError(t, p.Validate())
	})

	t.Run("fourth variation attribute dropped without error", func(t *testing.T) {
		product := &WooProduct{
			ID:     3,
			Name:   "Sneaker",
			Type:   "variable",
			Status: "publish",
			Attributes: []WooAttribute{
				{Name: "Size", Variation: true, Options: []string{"40", "41"}},
				{Name: "Color", Variation: true, Options: []string{"White"}},
				{Name: "Width", Variation: true, Options: []string{"Wide"}},
				{Name: "Lace", Variation: true, Options: []string{"Flat"}},
			},
		}
		p, err := tr.Normalize(product, nil)
		require.NoError(t, err)
		require.Len(t, p.Options, 3)
		assert.Equal(t, []string{"Size", "Color", "Width"}, []string{p.Options[0].Name, p.Options[1].Name, p.Options[2].Name})
		assert.Equal(t, []string{"Lace"}, p.Metadata[integration.MetadataDroppedOptions])
	})

	t.Run("sale price with higher regular price", func(t *testing.T) {
		p, err := tr.Normalize(&WooProduct{ID: 1, Name: "T", Type: "simple", RegularPrice: "20", SalePrice: "15"}, nil)
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(15)))
		require.NotNil(t, p.CompareAtPrice)
		assert.True(t, p.CompareAtPrice.Equal(decimal.NewFromInt(20)))
	})

	t.Run("description preferred over short description", func(t *testing.T) {
		p, err := tr.Normalize(&WooProduct{ID: 1, Name: "T", Description: "<b>Long</b>", ShortDescription: "Short"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Long", p.Description)
	})

	t.Run("backorders notify allows backorder", func(t *testing.T) {
		p, err := tr.Normalize(&WooProduct{ID: 1, Name: "T", Backorders: "notify", ManageStock: true, StockQuantity: ptr(-2)}, nil)
		require.NoError(t, err)
		require.NotNil(t, p.Inventory.AllowBackorder)
		assert.True(t, *p.Inventory.AllowBackorder)
		assert.Equal(t, 0, p.Inventory.Quantity)
	})

	t.Run("missing name is a transformation error", func(t *testing.T) {
		_, err := tr.Normalize(&WooProduct{ID: 1}, nil)
		var tErr *integration.TransformationError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "title", tErr.Field)
	})

	t.Run("wrong variant type", func(t *testing.T) {
		product, _ := sampleWooVariable()
		_, err := tr.Normalize(product, []integration.RawVariant{&ShopifyVariant{ID: 1}})
		var tErr *integration.TransformationError
		assert.ErrorAs(t, err, &tErr)
	})
}

func TestWooStatusToCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  integration.ProductStatus
	}{
		{"publish", integration.ProductStatusActive},
		{"pending", integration.ProductStatusDraft},
		{"private", integration.ProductStatusArchived},
		{"draft", integration.ProductStatusDraft},
		{"future", integration.ProductStatusDraft},
		{"trash", integration.ProductStatusDraft},
		{"", integration.ProductStatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := wooStatusToCanonical(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, integration.ProductStatusActive, wooStatusToCanonical("x-"+tt.input))
		})
	}
}

func TestWooCommerceTransformer_NeedsVariantFetch(t *testing.T) {
	tr := NewWooCommerceTransformer("")
	product, _ := sampleWooVariable()
	assert.True(t, tr.NeedsVariantFetch(product))
	assert.False(t, tr.NeedsVariantFetch(&WooProduct{Type: "simple"}))
	assert.False(t, tr.NeedsVariantFetch(&ShopifyProduct{}))
}

// ---------------------------------------------------------------------------
// Denormalize
// ---------------------------------------------------------------------------

func TestWooCommerceTransformer_Denormalize(t *testing.T) {
	tr := NewWooCommerceTransformer("kg")

	t.Run("variable product emits variations separately", func(t *testing.T) {
		shopify, err := NewShopifyTransformer().Normalize(sampleShopifyProduct(), nil)
		require.NoError(t, err)

		out, err := tr.Denormalize(shopify)
		require.NoError(t, err)
		assert.Equal(t, integration.ProductKindVariable, out.Kind)
		assert.ElementsMatch(t, []string{"vendor", "product_type"}, out.Dropped)

		wp := out.Product.(*WooProduct)
		assert.Equal(t, "variable", wp.Type)
		assert.Equal(t, "publish", wp.Status)
		assert.Empty(t, wp.RegularPrice)
		assert.Equal(t, "yes", wp.Backorders)
		require.Len(t, wp.Attributes, 2)
		assert.True(t, wp.Attributes[0].Variation)
		assert.Equal(t, []WooTerm{{Name: "summer"}, {Name: "cotton"}}, wp.Tags)

		require.Len(t, out.Variants, 2)
		first := out.Variants[0].(*WooVariation)
		assert.Equal(t, "TEE-S-RED", first.SKU)
		assert.Equal(t, "12.00", first.RegularPrice)
		assert.Empty(t, first.SalePrice)
		assert.Equal(t, []WooVariationAttribute{{Name: "Size", Option: "S"}, {Name: "Color", Option: "Red"}}, first.Attributes)
		assert.Equal(t, "0.2", first.Weight)
		second := out.Variants[1].(*WooVariation)
		assert.Equal(t, "15.00", second.RegularPrice)
		assert.Equal(t, "10.00", second.SalePrice)
		require.NotNil(t, second.StockQuantity)
		assert.Equal(t, 4, *second.StockQuantity)
	})

	t.Run("single variant with options is simple", func(t *testing.T) {
		p, err := integration.BuildCanonicalProduct(integration.ProductDraft{
			ExternalID: "1",
			Title:      "Solo",
			Status:     integration.ProductStatusArchived,
			Options:    []integration.Option{{Name: "Size", Values: []string{"M"}}},
			Variants:   []integration.Variant{{SKU: "SOLO", Price: decimal.NewFromInt(9), Option1: ptr("M"), InventoryTracked: true, InventoryQuantity: 2}},
		})
		require.NoError(t, err)

		out, err := tr.Denormalize(p)
		require.NoError(t, err)
		assert.Equal(t, integration.ProductKindSimple, out.Kind)
		assert.Empty(t, out.Variants)
		wp := out.Product.(*WooProduct)
		assert.Equal(t, "simple", wp.Type)
		assert.Equal(t, "private", wp.Status)
		assert.Equal(t, "SOLO", wp.SKU)
		assert.Equal(t, "9.00", wp.RegularPrice)
		assert.True(t, bool(wp.ManageStock))
		assert.Equal(t, 2, *wp.StockQuantity)
	})

	t.Run("weight converted to store unit", func(t *testing.T) {
		unit := integration.WeightUnitGram
		w := decimal.NewFromInt(500)
		p := &integration.CanonicalProduct{
			ExternalID: "1", Title: "Bag", Status: integration.ProductStatusActive, Price: decimal.NewFromInt(1),
			Variants: []integration.Variant{{Price: decimal.NewFromInt(1), Weight: &w, WeightUnit: &unit}},
		}
		out, err := tr.Denormalize(p)
		require.NoError(t, err)
		assert.Equal(t, "0.5", out.Product.(*WooProduct).Weight)
	})
}

func TestWooCommerceTransformer_RoundTrip(t *testing.T) {
	tr := NewWooCommerceTransformer("kg")
	p, err := integration.BuildCanonicalProduct(integration.ProductDraft{
		ExternalID:     "9",
		SourcePlatform: integration.PlatformShopify,
		Title:          "Candle",
		Price:          decimal.RequireFromString("12.5"),
		CompareAtPrice: decPtr("15"),
		Status:         integration.ProductStatusActive,
	})
	require.NoError(t, err)

	first, err := tr.Denormalize(p)
	require.NoError(t, err)
	wp := first.Product.(*WooProduct)
	wp.ID = 44

	normalized, err := tr.Normalize(wp, nil)
	require.NoError(t, err)
	second, err := tr.Denormalize(normalized)
	require.NoError(t, err)

	again := second.Product.(*WooProduct)
	assert.Equal(t, wp.Name, again.Name)
	assert.Equal(t, wp.Status, again.Status)
	assert.Equal(t, wp.RegularPrice, again.RegularPrice)
	assert.Equal(t, wp.SalePrice, again.SalePrice)
	assert.True(t, normalized.Price.Equal(p.Price))
	assert.Equal(t, p.Status, normalized.Status)
	assert.Equal(t, p.Title, normalized.Title)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
