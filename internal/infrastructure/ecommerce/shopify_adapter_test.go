package ecommerce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestShopifyConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *ShopifyConfig
		wantErr error
	}{
		{
			name:    "valid config",
			config:  &ShopifyConfig{ShopDomain: "acme.myshopify.com", AccessToken: "shpat_test"},
			wantErr: nil,
		},
		{
			name:    "base URL instead of domain",
			config:  &ShopifyConfig{BaseURL: "http://localhost:9999", AccessToken: "shpat_test"},
			wantErr: nil,
		},
		{
			name:    "missing shop domain",
			config:  &ShopifyConfig{AccessToken: "shpat_test"},
			wantErr: ErrShopifyConfigMissingShopDomain,
		},
		{
			name:    "missing access token",
			config:  &ShopifyConfig{ShopDomain: "acme.myshopify.com"},
			wantErr: ErrShopifyConfigMissingAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				// Check defaults are set
				assert.Equal(t, DefaultShopifyAPIVersion, tt.config.APIVersion)
				assert.True(t, tt.config.Timeout > 0)
			}
		})
	}
}

func TestShopifyConfig_AdminURL(t *testing.T) {
	cfg := NewShopifyConfig("acme.myshopify.com", "token")
	assert.Equal(t, "https://acme.myshopify.com/admin/api/2024-07", cfg.AdminURL())

	cfg.BaseURL = "http://127.0.0.1:8080/"
	assert.Equal(t, "http://127.0.0.1:8080/admin/api/2024-07", cfg.AdminURL())
}

// ---------------------------------------------------------------------------
// Adapter Tests
// ---------------------------------------------------------------------------

func TestShopifyAdapter_FetchOne(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/admin/api/2024-07/products/632910392.json", r.URL.Path)
			assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
			_ = json.NewEncoder(w).Encode(map[string]any{"product": sampleShopifyProduct()})
		}))
		defer server.Close()

		adapter := createShopifyAdapter(t, server.URL)
		raw, err := adapter.FetchOne(context.Background(), "632910392")
		require.NoError(t, err)
		sp, ok := raw.(*ShopifyProduct)
		require.True(t, ok)
		assert.Equal(t, "Classic Tee", sp.Title)
		assert.Len(t, sp.Variants, 2)
		assert.Equal(t, "632910392", raw.ExternalID())
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
		}))
		defer server.Close()

		adapter := createShopifyAdapter(t, server.URL)
		_, err := adapter.FetchOne(context.Background(), "1")
		assert.ErrorIs(t, err, integration.ErrProductNotFound)

		var apiErr *integration.UpstreamAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "Not Found")
	})

	t.Run("invalid ID", func(t *testing.T) {
		adapter := createShopifyAdapter(t, "http://127.0.0.1:1")
		_, err := adapter.FetchOne(context.Background(), "abc")
		assert.ErrorIs(t, err, ErrInvalidProductID)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"product":`))
		}))
		defer server.Close()

		adapter := createShopifyAdapter(t, server.URL)
		_, err := adapter.FetchOne(context.Background(), "1")
		assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
	})
}

func TestShopifyAdapter_FetchMany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-07/products.json", r.URL.Path)
		if r.URL.Query().Get("page_info") == "" {
			assert.Equal(t, "active", r.URL.Query().Get("status"))
			w.Header().Set("Link", `<https://acme.myshopify.com/admin/api/2024-07/products.json?limit=2&page_info=abc123>; rel="next"`)
		} else {
			assert.Empty(t, r.URL.Query().Get("status"))
			w.Header().Set("Link", `<https://acme.myshopify.com/admin/api/2024-07/products.json?limit=2&page_info=xyz>; rel="previous"`)
		}
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{"products": []*ShopifyProduct{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}})
	}))
	defer server.Close()

	adapter := createShopifyAdapter(t, server.URL)
	params := integration.PageParams{PerPage: 2, Status: "active"}
	page, err := adapter.FetchMany(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "abc123", page.NextCursor)

	next, ok := page.Next(params)
	require.True(t, ok)
	page, err = adapter.FetchMany(context.Background(), next)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
}

func TestShopifyAdapter_CreateAndUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody shopifyProductEnvelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		created := *gotBody.Product
		if created.ID == 0 {
			created.ID = 555
			w.WriteHeader(http.StatusCreated)
		}
		_ = json.NewEncoder(w).Encode(shopifyProductEnvelope{Product: &created})
	}))
	defer server.Close()

	adapter := createShopifyAdapter(t, server.URL)
	payload := &ShopifyProduct{ID: 99, Title: "New", Status: "draft", Variants: []ShopifyVariant{{Price: "1.00"}}}

	created, err := adapter.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/admin/api/2024-07/products.json", gotPath)
	assert.Zero(t, gotBody.Product.ID)
	assert.Equal(t, "555", created.ExternalID())
	assert.Equal(t, int64(99), payload.ID, "payload must not be mutated")

	updated, err := adapter.Update(context.Background(), "555", payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/api/2024-07/products/555.json", gotPath)
	assert.Equal(t, int64(555), gotBody.Product.ID)
	assert.Equal(t, "555", updated.ExternalID())

	_, err = adapter.Create(context.Background(), &WooProduct{Name: "wrong"})
	assert.ErrorIs(t, err, integration.ErrPayloadPlatformMismatch)
}

func TestShopifyAdapter_Variants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"variants": []ShopifyVariant{{ID: 1, SKU: "A"}, {ID: 2, SKU: "B"}}})
		case http.MethodPost:
			var env shopifyVariantEnvelope
			require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
			env.Variant.ID = 3
			_ = json.NewEncoder(w).Encode(env)
		}
	}))
	defer server.Close()

	adapter := createShopifyAdapter(t, server.URL)
	variants, err := adapter.FetchVariants(context.Background(), "10")
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "B", variants[1].VariantSKU())

	created, err := adapter.CreateVariant(context.Background(), "10", &ShopifyVariant{SKU: "C", Price: "2.00"})
	require.NoError(t, err)
	assert.Equal(t, "3", created.ExternalID())
}

func TestShopifyAdapter_TestConnection(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-07/shop.json", r.URL.Path)
			_, _ = w.Write([]byte(`{"shop":{"id":1,"name":"Acme"}}`))
		}))
		defer server.Close()
		assert.True(t, createShopifyAdapter(t, server.URL).TestConnection(context.Background()))
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		assert.False(t, createShopifyAdapter(t, server.URL).TestConnection(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()
		assert.False(t, createShopifyAdapter(t, url).TestConnection(context.Background()))
	})
}

func TestShopifyAdapter_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := createShopifyAdapter(t, url).FetchOne(context.Background(), "1")
	var netErr *integration.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, integration.PlatformShopify, netErr.Platform)
}

func TestNextPageInfo(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"empty", "", ""},
		{"next only", `<https://x/products.json?page_info=n1&limit=5>; rel="next"`, "n1"},
		{"previous and next", `<https://x/products.json?page_info=p1>; rel="previous", <https://x/products.json?page_info=n2>; rel="next"`, "n2"},
		{"previous only", `<https://x/products.json?page_info=p1>; rel="previous"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPageInfo(tt.link))
		})
	}
}

// ---------------------------------------------------------------------------
// Helper Functions
// ---------------------------------------------------------------------------

func createShopifyAdapter(t *testing.T, serverURL string) *ShopifyAdapter {
	adapter, err := NewShopifyAdapter(&ShopifyConfig{
		BaseURL:     serverURL,
		AccessToken: "shpat_test",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return adapter
}
