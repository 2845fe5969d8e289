package ecommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// WooCommerceAdapter implements integration.PlatformAdapter against the
// WooCommerce REST API v3 using basic auth with consumer key and secret.
type WooCommerceAdapter struct {
	config *WooCommerceConfig
	client *restClient
}

// NewWooCommerceAdapter creates a new WooCommerce adapter with the given configuration
func NewWooCommerceAdapter(config *WooCommerceConfig) (*WooCommerceAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	key, secret := config.ConsumerKey, config.ConsumerSecret
	return &WooCommerceAdapter{
		config: config,
		client: newRESTClient(integration.PlatformWooCommerce, config.APIURL(), config.Timeout, func(req *http.Request) {
			req.SetBasicAuth(key, secret)
		}),
	}, nil
}

// PlatformCode returns the platform code this adapter handles
func (a *WooCommerceAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformWooCommerce
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// FetchOne retrieves a single product
func (a *WooCommerceAdapter) FetchOne(ctx context.Context, id string) (integration.RawProduct, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	var product WooProduct
	if _, err := a.client.do(ctx, "fetch product", http.MethodGet, "products/"+id, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchMany retrieves a page of products using page/per_page pagination.
func (a *WooCommerceAdapter) FetchMany(ctx context.Context, params integration.PageParams) (*integration.ProductPage, error) {
	params = params.Normalized(50, WooCommerceMaxPageSize)

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if len(params.IDs) > 0 {
		query.Set("include", strings.Join(params.IDs, ","))
	}

	var products []*WooProduct
	header, err := a.client.do(ctx, "list products", http.MethodGet, "products", query, nil, &products)
	if err != nil {
		return nil, err
	}

	page := &integration.ProductPage{Items: make([]integration.RawProduct, 0, len(products))}
	for _, p := range products {
		if p != nil {
			page.Items = append(page.Items, p)
		}
	}
	if totalPages, err := strconv.Atoi(header.Get("X-WP-TotalPages")); err == nil && params.Page < totalPages {
		page.HasMore = true
		page.NextPage = params.Page + 1
	}
	return page, nil
}

// FetchVariants retrieves every variation of a product, walking all pages
func (a *WooCommerceAdapter) FetchVariants(ctx context.Context, productID string) ([]integration.RawVariant, error) {
	if err := validateNumericID(productID); err != nil {
		return nil, err
	}

	var out []integration.RawVariant
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(wooVariationsPage))

		var variations []*WooVariation
		header, err := a.client.do(ctx, "list variations", http.MethodGet, "products/"+productID+"/variations", query, nil, &variations)
		if err != nil {
			return nil, err
		}
		for _, v := range variations {
			if v != nil {
				out = append(out, v)
			}
		}

		totalPages, err := strconv.Atoi(header.Get("X-WP-TotalPages"))
		if err != nil || page >= totalPages || len(variations) == 0 {
			return out, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
}

// Create creates a product. Variations are created separately.
func (a *WooCommerceAdapter) Create(ctx context.Context, payload integration.RawProduct) (integration.RawProduct, error) {
	wp, err := asWooProduct(payload)
	if err != nil {
		return nil, err
	}
	body := *wp
	body.ID = 0
	body.Variations = nil
	var created WooProduct
	if _, err := a.client.do(ctx, "create product", http.MethodPost, "products", nil, &body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update updates a product
func (a *WooCommerceAdapter) Update(ctx context.Context, id string, payload integration.RawProduct) (integration.RawProduct, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	wp, err := asWooProduct(payload)
	if err != nil {
		return nil, err
	}
	body := *wp
	body.ID = 0
	body.Variations = nil
	var updated WooProduct
	if _, err := a.client.do(ctx, "update product", http.MethodPut, "products/"+id, nil, &body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateVariant creates a variation under an existing variable product
func (a *WooCommerceAdapter) CreateVariant(ctx context.Context, productID string, payload integration.RawVariant) (integration.RawVariant, error) {
	if err := validateNumericID(productID); err != nil {
		return nil, err
	}
	wv, ok := payload.(*WooVariation)
	if !ok || wv == nil {
		return nil, fmt.Errorf("%w: expected *WooVariation, got %T", integration.ErrPayloadPlatformMismatch, payload)
	}
	var created WooVariation
	if _, err := a.client.do(ctx, "create variation", http.MethodPost, "products/"+productID+"/variations", nil, wv, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TestConnection lists a single product. Any failure yields false.
func (a *WooCommerceAdapter) TestConnection(ctx context.Context) bool {
	query := url.Values{}
	query.Set("per_page", "1")
	var products []WooProduct
	_, err := a.client.do(ctx, "test connection", http.MethodGet, "products", query, nil, &products)
	return err == nil
}

func asWooProduct(payload integration.RawProduct) (*WooProduct, error) {
	wp, ok := payload.(*WooProduct)
	if !ok || wp == nil {
		return nil, fmt.Errorf("%w: expected *WooProduct, got %T", integration.ErrPayloadPlatformMismatch, payload)
	}
	return wp, nil
}

var _ integration.PlatformAdapter = (*WooCommerceAdapter)(nil)
