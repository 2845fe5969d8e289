package integration

// ---------------------------------------------------------------------------
// Transformer Port
// ---------------------------------------------------------------------------

// ProductKind tells whether a denormalized payload is a simple or variable product
type ProductKind string

const (
	ProductKindSimple   ProductKind = "simple"
	ProductKindVariable ProductKind = "variable"
)

// Denormalized is a canonical product rendered for one destination platform.
type Denormalized struct {
	// Product is the parent payload to create or update
	Product RawProduct `json:"product"`
	// Variants are variation sub-resources that must be created only after
	// the parent exists. Empty for platforms that embed variants.
	Variants []RawVariant `json:"variants,omitempty"`
	// Kind is simple or variable
	Kind ProductKind `json:"kind"`
	// Dropped lists canonical fields the destination has no slot for
	Dropped []string `json:"dropped,omitempty"`
}

// Transformer converts between one platform's wire payloads and the
// canonical product. Implementations are pure: no I/O, no shared state.
type Transformer interface {
	// Platform returns the platform this transformer handles
	Platform() PlatformCode

	// Normalize builds a canonical product from a raw payload and the
	// optionally pre-fetched variant sub-resources.
	Normalize(raw RawProduct, variants []RawVariant) (*CanonicalProduct, error)

	// Denormalize renders a canonical product as a destination payload.
	// The canonical product is never modified.
	Denormalize(p *CanonicalProduct) (*Denormalized, error)

	// NeedsVariantFetch reports whether raw references variant
	// sub-resources that must be fetched before Normalize.
	NeedsVariantFetch(raw RawProduct) bool
}

// NormalizeInput is one item for NormalizeAll
type NormalizeInput struct {
	Raw      RawProduct
	Variants []RawVariant
}

// NormalizeOutcome is the per-item result of NormalizeAll
type NormalizeOutcome struct {
	Product *CanonicalProduct
	Err     error
}

// DenormalizeOutcome is the per-item result of DenormalizeAll
type DenormalizeOutcome struct {
	Payload *Denormalized
	Err     error
}

// NormalizeAll normalizes every input independently. Outcomes are in input order.
func NormalizeAll(t Transformer, inputs []NormalizeInput) []NormalizeOutcome {
	out := make([]NormalizeOutcome, len(inputs))
	for i, in := range inputs {
		p, err := t.Normalize(in.Raw, in.Variants)
		out[i] = NormalizeOutcome{Product: p, Err: err}
	}
	return out
}

// DenormalizeAll denormalizes every product independently. Outcomes are in input order.
func DenormalizeAll(t Transformer, products []*CanonicalProduct) []DenormalizeOutcome {
	out := make([]DenormalizeOutcome, len(products))
	for i, p := range products {
		d, err := t.Denormalize(p)
		out[i] = DenormalizeOutcome{Payload: d, Err: err}
	}
	return out
}
