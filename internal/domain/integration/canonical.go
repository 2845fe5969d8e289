package integration

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ProductStatus is the canonical tri-state product status
// ---------------------------------------------------------------------------

// ProductStatus is the single status vocabulary every platform collapses into
type ProductStatus string

const (
	// ProductStatusActive indicates the product is published and purchasable
	ProductStatusActive ProductStatus = "active"
	// ProductStatusDraft indicates the product is not yet published
	ProductStatusDraft ProductStatus = "draft"
	// ProductStatusArchived indicates the product is hidden or retired
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid returns true if the status is valid
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// WeightUnit
// ---------------------------------------------------------------------------

// WeightUnit is the unit of a variant weight
type WeightUnit string

const (
	WeightUnitGram     WeightUnit = "g"
	WeightUnitOunce    WeightUnit = "oz"
	WeightUnitPound    WeightUnit = "lb"
	WeightUnitKilogram WeightUnit = "kg"
)

var weightUnitAliases = map[string]WeightUnit{
	"g":         WeightUnitGram,
	"gram":      WeightUnitGram,
	"grams":     WeightUnitGram,
	"oz":        WeightUnitOunce,
	"ounce":     WeightUnitOunce,
	"ounces":    WeightUnitOunce,
	"lb":        WeightUnitPound,
	"lbs":       WeightUnitPound,
	"pound":     WeightUnitPound,
	"pounds":    WeightUnitPound,
	"kg":        WeightUnitKilogram,
	"kilogram":  WeightUnitKilogram,
	"kilograms": WeightUnitKilogram,
}

// ParseWeightUnit maps a platform unit name to a WeightUnit.
// Unknown or empty names return nil.
func ParseWeightUnit(s string) *WeightUnit {
	u, ok := weightUnitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return nil
	}
	return &u
}

// IsValid returns true if the unit is valid
func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitGram, WeightUnitOunce, WeightUnitPound, WeightUnitKilogram:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// MaxOptions is the number of option dimensions a canonical product can carry
const MaxOptions = 3

// MetadataDroppedOptions lists option names removed during normalization
const MetadataDroppedOptions = "dropped_options"

// Inventory is the product-level stock summary
type Inventory struct {
	Quantity       int   `json:"quantity"`
	Tracked        bool  `json:"tracked"`
	AllowBackorder *bool `json:"allow_backorder,omitempty"`
}

// Image is a product image reference
type Image struct {
	Src      string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Option is a named variant dimension such as Size or Color
type Option struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// Variant is one purchasable combination of option values
type Variant struct {
	// ID is the platform-assigned variant ID (optional)
	ID                string           `json:"id,omitempty"`
	SKU               string           `json:"sku,omitempty"`
	Price             decimal.Decimal  `json:"price"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	Option1           *string          `json:"option1,omitempty"`
	Option2           *string          `json:"option2,omitempty"`
	Option3           *string          `json:"option3,omitempty"`
	InventoryQuantity int              `json:"inventory_quantity"`
	InventoryTracked  bool             `json:"inventory_tracked"`
	Weight            *decimal.Decimal `json:"weight,omitempty"`
	WeightUnit        *WeightUnit      `json:"weight_unit,omitempty"`
}

// OptionValue returns the value in the 1-based option slot, or nil.
func (v Variant) OptionValue(position int) *string {
	switch position {
	case 1:
		return v.Option1
	case 2:
		return v.Option2
	case 3:
		return v.Option3
	default:
		return nil
	}
}

// SetOptionValue sets the 1-based option slot. Positions outside 1..3 are ignored.
func (v *Variant) SetOptionValue(position int, value *string) {
	switch position {
	case 1:
		v.Option1 = value
	case 2:
		v.Option2 = value
	case 3:
		v.Option3 = value
	}
}

// DefaultVariant builds the single variant of a product that has none,
// from its top-level price and inventory.
func DefaultVariant(price decimal.Decimal, compareAt *decimal.Decimal, inv Inventory) Variant {
	v := Variant{
		Price:             price,
		InventoryQuantity: max(inv.Quantity, 0),
		InventoryTracked:  inv.Tracked,
	}
	if compareAt != nil && compareAt.GreaterThan(price) {
		c := *compareAt
		v.CompareAtPrice = &c
	}
	return v
}

// ---------------------------------------------------------------------------
// CanonicalProduct
// ---------------------------------------------------------------------------

// CanonicalProduct is the platform-agnostic hub representation of a product.
// Instances are built by BuildCanonicalProduct and not mutated afterwards.
type CanonicalProduct struct {
	// InternalID is assigned once the product is stored or mapped
	InternalID *uuid.UUID `json:"internal_id,omitempty"`
	// ExternalID is the source platform's native ID, string-normalized
	ExternalID string `json:"external_id"`
	// SourcePlatform is where the product was normalized from
	SourcePlatform PlatformCode     `json:"source_platform"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Vendor         string           `json:"vendor,omitempty"`
	ProductType    string           `json:"product_type,omitempty"`
	Tags           []string         `json:"tags"`
	Status         ProductStatus    `json:"status"`
	Inventory      Inventory        `json:"inventory"`
	Images         []Image          `json:"images"`
	Variants       []Variant        `json:"variants"`
	Options        []Option         `json:"options"`
	Metadata       map[string]any   `json:"metadata,omitempty"`
}

// ProductDraft carries the fields a transformer extracted from a raw payload.
// It is the only input to BuildCanonicalProduct.
type ProductDraft struct {
	ExternalID     string
	SourcePlatform PlatformCode
	Title          string
	Description    string
	// Price is the top-level price; replaced by the variant minimum when variants exist
	Price decimal.Decimal
	// CompareAtPrice is a candidate list price; kept only if greater than Price
	CompareAtPrice *decimal.Decimal
	Vendor         string
	ProductType    string
	Tags           []string
	Status         ProductStatus
	Inventory      Inventory
	Images         []Image
	Variants       []Variant
	// Options in source order; variants reference them positionally
	Options  []Option
	Metadata map[string]any
}

// BuildCanonicalProduct enforces the canonical invariants on a draft:
//   - external ID and title are required
//   - tags are trimmed, de-duplicated and never empty strings
//   - at most MaxOptions options survive; dropped names go to metadata
//   - a product without variants gets a synthetic default variant
//   - price is the minimum variant price, quantity the sum of variant quantities
//   - compare-at price is kept only when strictly greater than price
func BuildCanonicalProduct(d ProductDraft) (*CanonicalProduct, error) {
	externalID := strings.TrimSpace(d.ExternalID)
	if externalID == "" {
		return nil, NewTransformationError(d.SourcePlatform, "external_id", "required")
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, NewTransformationError(d.SourcePlatform, "title", "required")
	}

	status := d.Status
	if !status.IsValid() {
		status = ProductStatusDraft
	}

	options, slots, dropped := buildOptions(d.Options, d.Variants)
	variants := buildVariants(d.Variants, slots)
	if len(variants) == 0 {
		variants = []Variant{DefaultVariant(d.Price, d.CompareAtPrice, d.Inventory)}
	}

	minIdx := MinPriceIndex(variants)
	price := variants[minIdx].Price

	inventory := Inventory{AllowBackorder: copyBool(d.Inventory.AllowBackorder)}
	for _, v := range variants {
		inventory.Quantity += v.InventoryQuantity
		inventory.Tracked = inventory.Tracked || v.InventoryTracked
	}

	var compareAt *decimal.Decimal
	switch {
	case d.CompareAtPrice != nil && d.CompareAtPrice.GreaterThan(price):
		c := *d.CompareAtPrice
		compareAt = &c
	case d.CompareAtPrice == nil && variants[minIdx].CompareAtPrice != nil:
		c := *variants[minIdx].CompareAtPrice
		compareAt = &c
	}

	metadata := maps.Clone(d.Metadata)
	if len(dropped) > 0 {
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata[MetadataDroppedOptions] = dropped
	}

	images := make([]Image, 0, len(d.Images))
	for _, img := range d.Images {
		if strings.TrimSpace(img.Src) == "" {
			continue
		}
		images = append(images, img)
	}

	return &CanonicalProduct{
		ExternalID:     externalID,
		SourcePlatform: d.SourcePlatform,
		Title:          title,
		Description:    strings.TrimSpace(d.Description),
		Price:          price,
		CompareAtPrice: compareAt,
		Vendor:         strings.TrimSpace(d.Vendor),
		ProductType:    strings.TrimSpace(d.ProductType),
		Tags:           NormalizeTags(d.Tags),
		Status:         status,
		Inventory:      inventory,
		Images:         images,
		Variants:       variants,
		Options:        options,
		Metadata:       metadata,
	}, nil
}

// buildOptions keeps the first MaxOptions options that have a name and at
// least one value. slots[i] is the original 1-based slot that canonical
// option i+1 reads its variant values from.
func buildOptions(in []Option, variants []Variant) ([]Option, []int, []string) {
	options := make([]Option, 0, MaxOptions)
	slots := make([]int, 0, MaxOptions)
	var dropped []string

	for i, o := range in {
		name := strings.TrimSpace(o.Name)
		if i >= MaxOptions {
			dropped = append(dropped, name)
			continue
		}
		values := distinctNonEmpty(o.Values)
		if len(values) == 0 {
			slotValues := make([]string, 0, len(variants))
			for _, v := range variants {
				if val := v.OptionValue(i + 1); val != nil {
					slotValues = append(slotValues, *val)
				}
			}
			values = distinctNonEmpty(slotValues)
		}
		if name == "" || len(values) == 0 {
			dropped = append(dropped, name)
			continue
		}
		options = append(options, Option{Name: name, Position: len(options) + 1, Values: values})
		slots = append(slots, i+1)
	}
	return options, slots, dropped
}

func buildVariants(in []Variant, slots []int) []Variant {
	out := make([]Variant, 0, len(in))
	for _, v := range in {
		nv := v
		nv.InventoryQuantity = max(v.InventoryQuantity, 0)
		if v.CompareAtPrice == nil || !v.CompareAtPrice.GreaterThan(v.Price) {
			nv.CompareAtPrice = nil
		}
		if v.WeightUnit != nil && !v.WeightUnit.IsValid() {
			nv.WeightUnit = nil
		}
		nv.Option1, nv.Option2, nv.Option3 = nil, nil, nil
		for i, slot := range slots {
			nv.SetOptionValue(i+1, copyString(v.OptionValue(slot)))
		}
		out = append(out, nv)
	}
	return out
}

// MinPriceIndex returns the index of the cheapest variant. Ties resolve to
// the first encountered. It returns 0 for an empty slice.
func MinPriceIndex(variants []Variant) int {
	idx := 0
	for i := 1; i < len(variants); i++ {
		if variants[i].Price.LessThan(variants[idx].Price) {
			idx = i
		}
	}
	return idx
}

// NormalizeTags trims tags, drops empty ones and removes exact duplicates,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	return distinctNonEmpty(tags)
}

func distinctNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ---------------------------------------------------------------------------
// Behavior
// ---------------------------------------------------------------------------

// Validate checks the canonical invariants. It is used for products that did
// not come out of BuildCanonicalProduct, such as caller-supplied exports.
func (p *CanonicalProduct) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidCanonicalProduct)
	}
	if strings.TrimSpace(p.ExternalID) == "" && p.InternalID == nil {
		return fmt.Errorf("%w: external_id or internal_id is required", ErrInvalidCanonicalProduct)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCanonicalProduct)
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidCanonicalProduct, p.Status)
	}
	if len(p.Options) > MaxOptions {
		return fmt.Errorf("%w: %d options exceed the maximum of %d", ErrInvalidCanonicalProduct, len(p.Options), MaxOptions)
	}
	for _, o := range p.Options {
		if strings.TrimSpace(o.Name) == "" || len(o.Values) == 0 {
			return fmt.Errorf("%w: option %q needs a name and values", ErrInvalidCanonicalProduct, o.Name)
		}
		if len(distinctNonEmpty(o.Values)) != len(o.Values) {
			return fmt.Errorf("%w: option %q has empty or duplicate values", ErrInvalidCanonicalProduct, o.Name)
		}
	}
	if len(NormalizeTags(p.Tags)) != len(p.Tags) {
		return fmt.Errorf("%w: tags must be distinct and non-empty", ErrInvalidCanonicalProduct)
	}
	if p.Inventory.Quantity < 0 {
		return fmt.Errorf("%w: negative inventory quantity", ErrInvalidCanonicalProduct)
	}
	if len(p.Variants) > 0 {
		minPrice := p.Variants[MinPriceIndex(p.Variants)].Price
		if !p.Price.Equal(minPrice) {
			return fmt.Errorf("%w: price %s differs from minimum variant price %s", ErrInvalidCanonicalProduct, p.Price, minPrice)
		}
		for _, v := range p.Variants {
			if v.InventoryQuantity < 0 {
				return fmt.Errorf("%w: negative variant inventory", ErrInvalidCanonicalProduct)
			}
		}
	}
	if p.CompareAtPrice != nil && !p.CompareAtPrice.GreaterThan(p.Price) {
		return fmt.Errorf("%w: compare_at_price must exceed price", ErrInvalidCanonicalProduct)
	}
	return nil
}

// IsVariable reports whether the product is driven by options across more
// than one variant. Everything else is a simple product.
func (p *CanonicalProduct) IsVariable() bool {
	return len(p.Variants) > 1 && len(p.Options) > 0
}

// PrimaryVariant returns variants[0], or the default variant built from the
// top-level price and inventory when the product has none.
func (p *CanonicalProduct) PrimaryVariant() Variant {
	if len(p.Variants) > 0 {
		return p.Variants[0]
	}
	return DefaultVariant(p.Price, p.CompareAtPrice, p.Inventory)
}

// IdentityID returns the InternalID, or the deterministic ID derived from
// the source platform and external ID.
func (p *CanonicalProduct) IdentityID() uuid.UUID {
	if p.InternalID != nil {
		return *p.InternalID
	}
	return CanonicalIDFor(p.SourcePlatform, p.ExternalID)
}

// WithInternalID returns a copy of the product carrying the given internal ID.
func (p *CanonicalProduct) WithInternalID(id uuid.UUID) *CanonicalProduct {
	cp := p.Clone()
	cp.InternalID = &id
	return cp
}

// Clone returns a deep copy of the product.
func (p *CanonicalProduct) Clone() *CanonicalProduct {
	cp := *p
	if p.InternalID != nil {
		id := *p.InternalID
		cp.InternalID = &id
	}
	cp.CompareAtPrice = copyDecimal(p.CompareAtPrice)
	cp.Inventory.AllowBackorder = copyBool(p.Inventory.AllowBackorder)
	cp.Tags = slices.Clone(p.Tags)
	cp.Images = slices.Clone(p.Images)
	for i, img := range p.Images {
		if img.Position != nil {
			pos := *img.Position
			cp.Images[i].Position = &pos
		}
	}
	cp.Variants = slices.Clone(p.Variants)
	for i, v := range p.Variants {
		nv := v
		nv.CompareAtPrice = copyDecimal(v.CompareAtPrice)
		nv.Weight = copyDecimal(v.Weight)
		nv.Option1 = copyString(v.Option1)
		nv.Option2 = copyString(v.Option2)
		nv.Option3 = copyString(v.Option3)
		cp.Variants[i] = nv
	}
	cp.Options = slices.Clone(p.Options)
	for i, o := range p.Options {
		cp.Options[i].Values = slices.Clone(o.Values)
	}
	cp.Metadata = maps.Clone(p.Metadata)
	return &cp
}

// canonicalNamespace scopes deterministic canonical IDs.
var canonicalNamespace = uuid.MustParse("6f1c2d9e-4b7a-4c3e-9d21-8a0f3b6e7c45")

// CanonicalIDFor derives a stable canonical product ID from its source
// platform and external ID, so repeated syncs resolve the same mapping.
func CanonicalIDFor(platform PlatformCode, externalID string) uuid.UUID {
	return uuid.NewSHA1(canonicalNamespace, []byte(string(platform)+":"+externalID))
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
