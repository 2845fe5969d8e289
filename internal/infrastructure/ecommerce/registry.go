package ecommerce

import (
	"fmt"
	"slices"
	"sync"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// Registry holds the adapters and transformers available to the sync service
type Registry struct {
	mu           sync.RWMutex
	adapters     map[integration.PlatformCode]integration.PlatformAdapter
	transformers map[integration.PlatformCode]integration.Transformer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		adapters:     make(map[integration.PlatformCode]integration.PlatformAdapter),
		transformers: make(map[integration.PlatformCode]integration.Transformer),
	}
}

// NewDefaultRegistry registers both transformers and an adapter for every
// non-nil platform config.
func NewDefaultRegistry(shopify *ShopifyConfig, woo *WooCommerceConfig) (*Registry, error) {
	r := NewRegistry()

	weightUnit := DefaultWooCommerceWeightUnit
	if woo != nil && woo.WeightUnit != "" {
		weightUnit = woo.WeightUnit
	}
	r.RegisterTransformer(NewShopifyTransformer())
	r.RegisterTransformer(NewWooCommerceTransformer(weightUnit))

	if shopify != nil {
		a, err := NewShopifyAdapter(shopify)
		if err != nil {
			return nil, err
		}
		r.RegisterAdapter(a)
	}
	if woo != nil {
		a, err := NewWooCommerceAdapter(woo)
		if err != nil {
			return nil, err
		}
		r.RegisterAdapter(a)
	}
	return r, nil
}

// RegisterAdapter adds or replaces the adapter for its platform
func (r *Registry) RegisterAdapter(a integration.PlatformAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.PlatformCode()] = a
}

// RegisterTransformer adds or replaces the transformer for its platform
func (r *Registry) RegisterTransformer(t integration.Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[t.Platform()] = t
}

// Adapter returns the adapter for a platform
func (r *Registry) Adapter(code integration.PlatformCode) (integration.PlatformAdapter, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnsupportedPlatform, code)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integration.ErrAdapterNotConfigured, code)
	}
	return a, nil
}

// Transformer returns the transformer for a platform
func (r *Registry) Transformer(code integration.PlatformCode) (integration.Transformer, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnsupportedPlatform, code)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transformers[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integration.ErrTransformerNotConfigured, code)
	}
	return t, nil
}

// Platforms lists platforms with a registered adapter, sorted
func (r *Registry) Platforms() []integration.PlatformCode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]integration.PlatformCode, 0, len(r.adapters))
	for code := range r.adapters {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

var _ integration.PlatformRegistry = (*Registry)(nil)
