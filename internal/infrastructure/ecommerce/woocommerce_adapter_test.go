package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/backend/internal/domain/integration"
)

func TestWooCommerceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *WooCommerceConfig
		wantErr error
	}{
		{
			name:    "valid config",
			config:  &WooCommerceConfig{BaseURL: "https://shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs"},
			wantErr: nil,
		},
		{
			name:    "missing base URL",
			config:  &WooCommerceConfig{ConsumerKey: "ck", ConsumerSecret: "cs"},
			wantErr: ErrWooCommerceConfigMissingBaseURL,
		},
		{
			name:    "missing consumer key",
			config:  &WooCommerceConfig{BaseURL: "https://shop.example.com", ConsumerSecret: "cs"},
			wantErr: ErrWooCommerceConfigMissingConsumerKey,
		},
		{
			name:    "missing consumer secret",
			config:  &WooCommerceConfig{BaseURL: "https://shop.example.com", ConsumerKey: "ck"},
			wantErr: ErrWooCommerceConfigMissingConsumerSecret,
		},
		{
			name:    "unknown weight unit",
			config:  &WooCommerceConfig{BaseURL: "https://shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs", WeightUnit: "stone"},
			wantErr: ErrWooCommerceConfigInvalidWeightUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, DefaultWooCommerceWeightUnit, tt.config.WeightUnit)
			assert.True(t, tt.config.Timeout > 0)
		})
	}
}

func TestWooCommerceConfig_APIURL(t *testing.T) {
	cfg := NewWooCommerceConfig("https://shop.example.com/", "ck", "cs")
	assert.Equal(t, "https://shop.example.com/wp-json/wc/v3", cfg.APIURL())
}

func TestWooCommerceAdapter_FetchOne(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)
		_, _ = w.Write([]byte(`{"id":42,"name":"Hoodie","type":"variable","status":"publish","manage_stock":"parent","variations":[100,101]}`))
	}))
	defer server.Close()

	adapter := createWooAdapter(t, server.URL)
	raw, err := adapter.FetchOne(context.Background(), "42")
	require.NoError(t, err)

	wp, ok := raw.(*WooProduct)
	require.True(t, ok)
	assert.Equal(t, "Hoodie", wp.Name)
	assert.True(t, bool(wp.ManageStock))
	assert.Equal(t, []int64{100, 101}, wp.Variations)
	assert.True(t, NewWooCommerceTransformer("kg").NeedsVariantFetch(raw))
}

func TestWooCommerceAdapter_FetchMany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("per_page"))
		assert.Equal(t, "1,2", q.Get("include"))
		w.Header().Set("X-WP-TotalPages", "2")
		page, _ := strconv.Atoi(q.Get("page"))
		_, _ = fmt.Fprintf(w, `[{"id":%d,"name":"P%d","type":"simple"}]`, page, page)
	}))
	defer server.Close()

	adapter := createWooAdapter(t, server.URL)
	params := integration.PageParams{PerPage: 10, IDs: []string{"1", "2"}}

	page, err := adapter.FetchMany(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ExternalID())
	assert.True(t, page.HasMore)
	assert.Equal(t, 2, page.NextPage)

	next, ok := page.Next(params)
	require.True(t, ok)
	page, err = adapter.FetchMany(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, "2", page.Items[0].ExternalID())
	assert.False(t, page.HasMore)
}

func TestWooCommerceAdapter_FetchVariants(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/wp-json/wc/v3/products/42/variations", r.URL.Path)
		w.Header().Set("X-WP-TotalPages", "2")
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`[{"id":100,"sku":"H-S"},{"id":101,"sku":"H-M"}]`))
		default:
			_, _ = w.Write([]byte(`[{"id":102,"sku":"H-L"}]`))
		}
	}))
	defer server.Close()

	variants, err := createWooAdapter(t, server.URL).FetchVariants(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "H-L", variants[2].VariantSKU())
	assert.Equal(t, "102", variants[2].ExternalID())
}

func TestWooCommerceAdapter_Write(t *testing.T) {
	var methods, paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		assert.False(t, hasID, "request bodies never carry the product ID")
		_, hasVariations := body["variations"]
		assert.False(t, hasVariations)

		switch r.URL.Path {
		case "/wp-json/wc/v3/products/42/variations":
			_, _ = w.Write([]byte(`{"id":300,"sku":"H-XL"}`))
		default:
			_, _ = w.Write([]byte(`{"id":42,"name":"Hoodie","type":"variable"}`))
		}
	}))
	defer server.Close()

	adapter := createWooAdapter(t, server.URL)
	payload := &WooProduct{ID: 7, Name: "Hoodie", Type: "variable", Variations: []int64{1}}

	created, err := adapter.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "42", created.ExternalID())

	_, err = adapter.Update(context.Background(), "42", payload)
	require.NoError(t, err)

	variant, err := adapter.CreateVariant(context.Background(), "42", &WooVariation{SKU: "H-XL", RegularPrice: "50.00"})
	require.NoError(t, err)
	assert.Equal(t, "300", variant.ExternalID())

	assert.Equal(t, []string{http.MethodPost, http.MethodPut, http.MethodPost}, methods)
	assert.Equal(t, []string{
		"/wp-json/wc/v3/products",
		"/wp-json/wc/v3/products/42",
		"/wp-json/wc/v3/products/42/variations",
	}, paths)
	assert.Equal(t, int64(7), payload.ID)

	_, err = adapter.CreateVariant(context.Background(), "42", &ShopifyVariant{})
	assert.ErrorIs(t, err, integration.ErrPayloadPlatformMismatch)
}

func TestWooCommerceAdapter_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"woocommerce_rest_invalid_product","message":"Invalid SKU"}`))
	}))
	defer server.Close()

	_, err := createWooAdapter(t, server.URL).Create(context.Background(), &WooProduct{Name: "x"})
	var apiErr *integration.UpstreamAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, integration.PlatformWooCommerce, apiErr.Platform)
	assert.Contains(t, apiErr.Error(), "Invalid SKU")
	assert.NotErrorIs(t, err, integration.ErrProductNotFound)
	assert.True(t, integration.IsUpstreamError(err))
}

func TestWooCommerceAdapter_TestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, _, _ := r.BasicAuth(); user != "ck_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	assert.True(t, createWooAdapter(t, server.URL).TestConnection(context.Background()))

	bad, err := NewWooCommerceAdapter(&WooCommerceConfig{BaseURL: server.URL, ConsumerKey: "nope", ConsumerSecret: "x"})
	require.NoError(t, err)
	assert.False(t, bad.TestConnection(context.Background()))
}

func createWooAdapter(t *testing.T, serverURL string) *WooCommerceAdapter {
	adapter, err := NewWooCommerceAdapter(&WooCommerceConfig{
		BaseURL:        serverURL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		Timeout:        5 * time.Second,
	})
	require.NoError(t, err)
	return adapter
}
