package integration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func variantAt(price string, qty int, tracked bool) Variant {
	return Variant{Price: decimal.RequireFromString(price), InventoryQuantity: qty, InventoryTracked: tracked}
}

// ---------------------------------------------------------------------------
// BuildCanonicalProduct Tests
// ---------------------------------------------------------------------------

func TestBuildCanonicalProduct(t *testing.T) {
	t.Run("Missing external ID", func(t *testing.T) {
		_, err := BuildCanonicalProduct(ProductDraft{Title: "Shirt", SourcePlatform: PlatformShopify})
		var tErr *TransformationError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "external_id", tErr.Field)
	})

	t.Run("Missing title", func(t *testing.T) {
		_, err := BuildCanonicalProduct(ProductDraft{ExternalID: "1", Title: "   "})
		var tErr *TransformationError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "title", tErr.Field)
	})

	t.Run("Price is the minimum variant price", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "Mug",
			Price:      decimal.NewFromInt(99),
			Variants: []Variant{
				variantAt("10", 1, false),
				variantAt("8", 2, true),
				variantAt("12", 3, false),
			},
		})
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(8)))
		assert.Equal(t, 6, p.Inventory.Quantity)
		assert.True(t, p.Inventory.Tracked)
		require.NoError(t, p.Validate())
	})

	t.Run("Tied minimum prices do not depend on order", func(t *testing.T) {
		a := variantAt("5.00", 1, false)
		a.SKU = "A"
		b := variantAt("5", 1, false)
		b.SKU = "B"
		c := variantAt("7", 1, false)

		forward, err := BuildCanonicalProduct(ProductDraft{ExternalID: "1", Title: "T", Variants: []Variant{a, b, c}})
		require.NoError(t, err)
		reverse, err := BuildCanonicalProduct(ProductDraft{ExternalID: "1", Title: "T", Variants: []Variant{c, b, a}})
		require.NoError(t, err)

		assert.True(t, forward.Price.Equal(reverse.Price))
		assert.True(t, forward.Price.Equal(a.Price))
		assert.True(t, forward.Price.Equal(b.Price))
		assert.Equal(t, 0, MinPriceIndex(forward.Variants))
		assert.Equal(t, 1, MinPriceIndex(reverse.Variants))
	})

	t.Run("Synthetic default variant for simple products", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID:     "7",
			Title:          "Poster",
			Price:          decimal.RequireFromString("29.99"),
			CompareAtPrice: decPtr("39.99"),
			Inventory:      Inventory{Quantity: 4, Tracked: true},
		})
		require.NoError(t, err)
		require.Len(t, p.Variants, 1)
		assert.Empty(t, p.Options)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("29.99")))
		require.NotNil(t, p.CompareAtPrice)
		assert.True(t, p.CompareAtPrice.Equal(decimal.RequireFromString("39.99")))
		assert.Equal(t, 4, p.Inventory.Quantity)
		assert.False(t, p.IsVariable())
	})

	t.Run("Compare-at price dropped when not greater", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID:     "7",
			Title:          "Poster",
			Price:          decimal.RequireFromString("10"),
			CompareAtPrice: decPtr("10"),
		})
		require.NoError(t, err)
		assert.Nil(t, p.CompareAtPrice)
		assert.Nil(t, p.Variants[0].CompareAtPrice)
	})

	t.Run("Tags trimmed and de-duplicated", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Tags:       []string{" summer", "", "sale ", "summer", "Sale"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"summer", "sale", "Sale"}, p.Tags)
	})

	t.Run("Fourth option is dropped and recorded", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Options: []Option{
				{Name: "Size", Values: []string{"S", "M"}},
				{Name: "Color", Values: []string{"Red"}},
				{Name: "Material", Values: []string{"Cotton"}},
				{Name: "Fit", Values: []string{"Slim"}},
			},
			Variants: []Variant{
				{Price: decimal.NewFromInt(1), Option1: strPtr("S"), Option2: strPtr("Red"), Option3: strPtr("Cotton")},
				{Price: decimal.NewFromInt(2), Option1: strPtr("M"), Option2: strPtr("Red"), Option3: strPtr("Cotton")},
			},
		})
		require.NoError(t, err)
		require.Len(t, p.Options, MaxOptions)
		assert.Equal(t, "Material", p.Options[2].Name)
		assert.Equal(t, []string{"Fit"}, p.Metadata[MetadataDroppedOptions])
		assert.True(t, p.IsVariable())
	})

	t.Run("Empty option shifts later slots", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Options: []Option{
				{Name: "Ghost"},
				{Name: "Color", Values: []string{"Red", "Blue"}},
			},
			Variants: []Variant{
				{Price: decimal.NewFromInt(1), Option2: strPtr("Red")},
				{Price: decimal.NewFromInt(1), Option2: strPtr("Blue")},
			},
		})
		require.NoError(t, err)
		require.Len(t, p.Options, 1)
		assert.Equal(t, 1, p.Options[0].Position)
		assert.Equal(t, "Red", *p.Variants[0].Option1)
		assert.Nil(t, p.Variants[0].Option2)
	})

	t.Run("Option values derived from variants", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Options:    []Option{{Name: "Size"}},
			Variants: []Variant{
				{Price: decimal.NewFromInt(1), Option1: strPtr("S")},
				{Price: decimal.NewFromInt(1), Option1: strPtr("M")},
				{Price: decimal.NewFromInt(1), Option1: strPtr("S")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"S", "M"}, p.Options[0].Values)
	})

	t.Run("Invalid status falls back to draft", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{ExternalID: "1", Title: "T", Status: "published"})
		require.NoError(t, err)
		assert.Equal(t, ProductStatusDraft, p.Status)
	})

	t.Run("Negative quantities clamp to zero", func(t *testing.T) {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Variants:   []Variant{variantAt("1", -5, true), variantAt("1", 3, true)},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, p.Inventory.Quantity)
	})
}

// ---------------------------------------------------------------------------
// CanonicalProduct behavior
// ---------------------------------------------------------------------------

func TestCanonicalProduct_Validate(t *testing.T) {
	valid := func() *CanonicalProduct {
		p, err := BuildCanonicalProduct(ProductDraft{
			ExternalID: "1",
			Title:      "T",
			Status:     ProductStatusActive,
			Variants:   []Variant{variantAt("3", 1, true), variantAt("4", 1, true)},
		})
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name   string
		mutate func(p *CanonicalProduct)
	}{
		{"empty title", func(p *CanonicalProduct) { p.Title = "" }},
		{"unknown status", func(p *CanonicalProduct) { p.Status = "live" }},
		{"price not minimum", func(p *CanonicalProduct) { p.Price = decimal.NewFromInt(4) }},
		{"too many options", func(p *CanonicalProduct) {
			p.Options = []Option{
				{Name: "a", Values: []string{"1"}}, {Name: "b", Values: []string{"1"}},
				{Name: "c", Values: []string{"1"}}, {Name: "d", Values: []string{"1"}},
			}
		}},
		{"duplicate option values", func(p *CanonicalProduct) {
			p.Options = []Option{{Name: "a", Values: []string{"1", "1"}}}
		}},
		{"duplicate tags", func(p *CanonicalProduct) { p.Tags = []string{"x", "x"} }},
		{"compare-at not greater", func(p *CanonicalProduct) { p.CompareAtPrice = decPtr("3") }},
		{"negative quantity", func(p *CanonicalProduct) { p.Inventory.Quantity = -1 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidCanonicalProduct)
		})
	}
}

func TestCanonicalProduct_WithInternalID(t *testing.T) {
	p, err := BuildCanonicalProduct(ProductDraft{
		ExternalID: "42",
		Title:      "T",
		Tags:       []string{"a"},
		Variants:   []Variant{{Price: decimal.NewFromInt(1), Option1: strPtr("S")}},
		Options:    []Option{{Name: "Size", Values: []string{"S"}}},
	})
	require.NoError(t, err)

	id := CanonicalIDFor(PlatformShopify, "42")
	withID := p.WithInternalID(id)
	withID.Tags[0] = "changed"
	*withID.Variants[0].Option1 = "XL"

	assert.Nil(t, p.InternalID)
	assert.Equal(t, "a", p.Tags[0])
	assert.Equal(t, "S", *p.Variants[0].Option1)
	assert.Equal(t, id, withID.IdentityID())
}

func TestCanonicalIDFor(t *testing.T) {
	a := CanonicalIDFor(PlatformShopify, "100")
	assert.Equal(t, a, CanonicalIDFor(PlatformShopify, "100"))
	assert.NotEqual(t, a, CanonicalIDFor(PlatformWooCommerce, "100"))
	assert.NotEqual(t, a, CanonicalIDFor(PlatformShopify, "101"))
}

func TestCanonicalProduct_PrimaryVariant(t *testing.T) {
	p := &CanonicalProduct{
		Price:          decimal.NewFromInt(5),
		CompareAtPrice: decPtr("9"),
		Inventory:      Inventory{Quantity: 2, Tracked: true},
	}
	v := p.PrimaryVariant()
	assert.True(t, v.Price.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, v.InventoryQuantity)
	assert.True(t, v.InventoryTracked)
	require.NotNil(t, v.CompareAtPrice)
}

func TestParseWeightUnit(t *testing.T) {
	tests := []struct {
		in   string
		want *WeightUnit
	}{
		{"kg", unitPtr(WeightUnitKilogram)},
		{"LBS", unitPtr(WeightUnitPound)},
		{" grams ", unitPtr(WeightUnitGram)},
		{"oz", unitPtr(WeightUnitOunce)},
		{"stone", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWeightUnit(tt.in))
		})
	}
}

func unitPtr(u WeightUnit) *WeightUnit { return &u }

func TestParsePlatformCode(t *testing.T) {
	code, err := ParsePlatformCode("shopify")
	require.NoError(t, err)
	assert.Equal(t, PlatformShopify, code)

	code, err = ParsePlatformCode("woo")
	require.NoError(t, err)
	assert.Equal(t, PlatformWooCommerce, code)

	_, err = ParsePlatformCode("magento")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestPageParams(t *testing.T) {
	p := PageParams{}.Normalized(50, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.PerPage)

	p = PageParams{Page: 3, PerPage: 500}.Normalized(50, 250)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 250, p.PerPage)

	page := &ProductPage{HasMore: true, NextCursor: "abc"}
	next, ok := page.Next(p)
	require.True(t, ok)
	assert.Equal(t, "abc", next.Cursor)

	_, ok = (&ProductPage{}).Next(p)
	assert.False(t, ok)
}
