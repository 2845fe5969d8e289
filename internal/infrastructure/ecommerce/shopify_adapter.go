package ecommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// ShopifyAdapter implements integration.PlatformAdapter against the Shopify
// Admin REST API. Payloads are wrapped in {"product": {...}} envelopes and
// pagination follows the cursor in the Link response header.
type ShopifyAdapter struct {
	config *ShopifyConfig
	client *restClient
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.AccessToken
	return &ShopifyAdapter{
		config: config,
		client: newRESTClient(integration.PlatformShopify, config.AdminURL(), config.Timeout, func(req *http.Request) {
			req.Header.Set("X-Shopify-Access-Token", token)
		}),
	}, nil
}

// PlatformCode returns the platform code this adapter handles
func (a *ShopifyAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformShopify
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// FetchOne retrieves a single product
func (a *ShopifyAdapter) FetchOne(ctx context.Context, id string) (integration.RawProduct, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	var env shopifyProductEnvelope
	if _, err := a.client.do(ctx, "fetch product", http.MethodGet, "products/"+id+".json", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Product == nil {
		return nil, fmt.Errorf("%w: shopify product envelope is empty", integration.ErrPlatformInvalidResponse)
	}
	return env.Product, nil
}

// FetchMany retrieves a page of products. Shopify rejects filters alongside
// page_info, so only limit is sent with a cursor.
func (a *ShopifyAdapter) FetchMany(ctx context.Context, params integration.PageParams) (*integration.ProductPage, error) {
	params = params.Normalized(50, ShopifyMaxPageSize)

	query := url.Values{}
	query.Set("limit", strconv.Itoa(params.PerPage))
	if params.Cursor != "" {
		query.Set("page_info", params.Cursor)
	} else {
		if params.Status != "" {
			query.Set("status", params.Status)
		}
		if len(params.IDs) > 0 {
			query.Set("ids", strings.Join(params.IDs, ","))
		}
	}

	var env shopifyProductsEnvelope
	header, err := a.client.do(ctx, "list products", http.MethodGet, "products.json", query, nil, &env)
	if err != nil {
		return nil, err
	}

	page := &integration.ProductPage{Items: make([]integration.RawProduct, 0, len(env.Products))}
	for _, p := range env.Products {
		if p != nil {
			page.Items = append(page.Items, p)
		}
	}
	if next := nextPageInfo(header.Get("Link")); next != "" {
		page.NextCursor = next
		page.HasMore = true
	}
	return page, nil
}

// FetchVariants retrieves the variants of a product
func (a *ShopifyAdapter) FetchVariants(ctx context.Context, productID string) ([]integration.RawVariant, error) {
	if err := validateNumericID(productID); err != nil {
		return nil, err
	}
	var env shopifyVariantsEnvelope
	if _, err := a.client.do(ctx, "list variants", http.MethodGet, "products/"+productID+"/variants.json", nil, nil, &env); err != nil {
		return nil, err
	}
	out := make([]integration.RawVariant, 0, len(env.Variants))
	for _, v := range env.Variants {
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// Create creates a product with its embedded variants
func (a *ShopifyAdapter) Create(ctx context.Context, payload integration.RawProduct) (integration.RawProduct, error) {
	sp, err := asShopifyProduct(payload)
	if err != nil {
		return nil, err
	}
	body := *sp
	body.ID = 0
	var env shopifyProductEnvelope
	if _, err := a.client.do(ctx, "create product", http.MethodPost, "products.json", nil, shopifyProductEnvelope{Product: &body}, &env); err != nil {
		return nil, err
	}
	if env.Product == nil {
		return nil, fmt.Errorf("%w: shopify product envelope is empty", integration.ErrPlatformInvalidResponse)
	}
	return env.Product, nil
}

// Update updates a product
func (a *ShopifyAdapter) Update(ctx context.Context, id string, payload integration.RawProduct) (integration.RawProduct, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	sp, err := asShopifyProduct(payload)
	if err != nil {
		return nil, err
	}
	body := *sp
	body.ID, _ = strconv.ParseInt(id, 10, 64)
	var env shopifyProductEnvelope
	if _, err := a.client.do(ctx, "update product", http.MethodPut, "products/"+id+".json", nil, shopifyProductEnvelope{Product: &body}, &env); err != nil {
		return nil, err
	}
	if env.Product == nil {
		return nil, fmt.Errorf("%w: shopify product envelope is empty", integration.ErrPlatformInvalidResponse)
	}
	return env.Product, nil
}

// CreateVariant creates a variant under an existing product
func (a *ShopifyAdapter) CreateVariant(ctx context.Context, productID string, payload integration.RawVariant) (integration.RawVariant, error) {
	if err := validateNumericID(productID); err != nil {
		return nil, err
	}
	sv, ok := payload.(*ShopifyVariant)
	if !ok || sv == nil {
		return nil, fmt.Errorf("%w: expected *ShopifyVariant, got %T", integration.ErrPayloadPlatformMismatch, payload)
	}
	var env shopifyVariantEnvelope
	if _, err := a.client.do(ctx, "create variant", http.MethodPost, "products/"+productID+"/variants.json", nil, shopifyVariantEnvelope{Variant: sv}, &env); err != nil {
		return nil, err
	}
	if env.Variant == nil {
		return nil, fmt.Errorf("%w: shopify variant envelope is empty", integration.ErrPlatformInvalidResponse)
	}
	return env.Variant, nil
}

// TestConnection fetches the shop resource. Any failure yields false.
func (a *ShopifyAdapter) TestConnection(ctx context.Context) bool {
	var env shopifyShopEnvelope
	if _, err := a.client.do(ctx, "fetch shop", http.MethodGet, "shop.json", nil, nil, &env); err != nil {
		return false
	}
	return env.Shop.ID != 0
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func asShopifyProduct(payload integration.RawProduct) (*ShopifyProduct, error) {
	sp, ok := payload.(*ShopifyProduct)
	if !ok || sp == nil {
		return nil, fmt.Errorf("%w: expected *ShopifyProduct, got %T", integration.ErrPayloadPlatformMismatch, payload)
	}
	return sp, nil
}

var linkNextPattern = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="?next"?`)

// nextPageInfo extracts the page_info cursor of the rel="next" link.
func nextPageInfo(link string) string {
	for _, part := range strings.Split(link, ",") {
		m := linkNextPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		u, err := url.Parse(m[1])
		if err != nil {
			return ""
		}
		return u.Query().Get("page_info")
	}
	return ""
}

var _ integration.PlatformAdapter = (*ShopifyAdapter)(nil)
