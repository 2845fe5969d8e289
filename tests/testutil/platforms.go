package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/gin-gonic/gin"
)

// Credentials the fake platforms accept.
const (
	FakeShopifyToken  = "shpat_test"
	FakeWooKey        = "ck_test"
	FakeWooSecret     = "cs_test"
	fakeShopifyPrefix = "/admin/api/" + ecommerce.DefaultShopifyAPIVersion
)

// RecordedCall is one request served by a fake platform.
type RecordedCall struct {
	Method string
	Path   string
}

// callLog records requests in arrival order.
type callLog struct {
	mu    sync.Mutex
	calls []RecordedCall
}

func (l *callLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		l.mu.Lock()
		l.calls = append(l.calls, RecordedCall{Method: c.Request.Method, Path: c.Request.URL.Path})
		l.mu.Unlock()
		c.Next()
	}
}

// Calls returns a copy of the recorded requests.
func (l *callLog) Calls() []RecordedCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RecordedCall, len(l.calls))
	copy(out, l.calls)
	return out
}

// CountCalls returns how many requests matched method and path.
func (l *callLog) CountCalls(method, path string) int {
	n := 0
	for _, c := range l.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Shopify
// ---------------------------------------------------------------------------

// FakeShopify is an in-memory Shopify Admin REST API.
type FakeShopify struct {
	callLog
	Server *httptest.Server

	mu       sync.Mutex
	products map[int64]*ecommerce.ShopifyProduct
	nextID   int64
}

// NewFakeShopify starts a fake shop seeded with products. The server is
// closed when the test ends.
func NewFakeShopify(t *testing.T, products ...*ecommerce.ShopifyProduct) *FakeShopify {
	t.Helper()

	f := &FakeShopify{products: make(map[int64]*ecommerce.ShopifyProduct), nextID: 9000}
	for _, p := range products {
		f.products[p.ID] = p
	}

	engine := gin.New()
	engine.Use(f.middleware(), func(c *gin.Context) {
		if c.GetHeader("X-Shopify-Access-Token") != FakeShopifyToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "[API] Invalid API key or access token"})
		}
	})
	api := engine.Group(fakeShopifyPrefix)
	api.GET("/shop.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"shop": gin.H{"id": 1, "name": "Test Shop", "domain": "test.myshopify.com"}})
	})
	api.GET("/products.json", f.list)
	api.POST("/products.json", f.create)
	api.GET("/products/:id", f.get)
	api.PUT("/products/:id", f.update)

	f.Server = httptest.NewServer(engine)
	t.Cleanup(f.Server.Close)
	return f
}

// Config returns an adapter configuration pointing at the fake shop.
func (f *FakeShopify) Config() *ecommerce.ShopifyConfig {
	cfg := ecommerce.NewShopifyConfig("test.myshopify.com", FakeShopifyToken)
	cfg.BaseURL = f.Server.URL
	return cfg
}

// Product returns a stored product, or nil.
func (f *FakeShopify) Product(id int64) *ecommerce.ShopifyProduct {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id]
}

func (f *FakeShopify) list(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*ecommerce.ShopifyProduct, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.products[id])
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (f *FakeShopify) get(c *gin.Context) {
	id, ok := shopifyPathID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	p := f.products[id]
	f.mu.Unlock()
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "Not Found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (f *FakeShopify) create(c *gin.Context) {
	var env struct {
		Product ecommerce.ShopifyProduct `json:"product"`
	}
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}
	f.mu.Lock()
	p := env.Product
	p.ID = f.assign()
	for i := range p.Variants {
		p.Variants[i].ID = f.assign()
	}
	f.products[p.ID] = &p
	f.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"product": &p})
}

func (f *FakeShopify) update(c *gin.Context) {
	id, ok := shopifyPathID(c)
	if !ok {
		return
	}
	var env struct {
		Product ecommerce.ShopifyProduct `json:"product"`
	}
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.products[id] == nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "Not Found"})
		return
	}
	p := env.Product
	p.ID = id
	for i := range p.Variants {
		if p.Variants[i].ID == 0 {
			p.Variants[i].ID = f.assign()
		}
	}
	f.products[id] = &p
	c.JSON(http.StatusOK, gin.H{"product": &p})
}

// assign must be called with mu held.
func (f *FakeShopify) assign() int64 {
	f.nextID++
	return f.nextID
}

func shopifyPathID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSuffix(c.Param("id"), ".json")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "Not Found"})
		return 0, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// WooCommerce
// ---------------------------------------------------------------------------

// FakeWooCommerce is an in-memory WooCommerce REST API v3.
type FakeWooCommerce struct {
	callLog
	Server *httptest.Server

	mu         sync.Mutex
	products   map[int64]*ecommerce.WooProduct
	variations map[int64][]*ecommerce.WooVariation
	nextID     int64
}

// NewFakeWooCommerce starts a fake store seeded with products. The server is
// closed when the test ends.
func NewFakeWooCommerce(t *testing.T, products ...*ecommerce.WooProduct) *FakeWooCommerce {
	t.Helper()

	f := &FakeWooCommerce{
		products:   make(map[int64]*ecommerce.WooProduct),
		variations: make(map[int64][]*ecommerce.WooVariation),
		nextID:     500,
	}
	for _, p := range products {
		f.products[p.ID] = p
	}

	engine := gin.New()
	engine.Use(f.middleware(), func(c *gin.Context) {
		key, secret, ok := c.Request.BasicAuth()
		if !ok || key != FakeWooKey || secret != FakeWooSecret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "woocommerce_rest_cannot_view"})
		}
	})
	api := engine.Group(ecommerce.WooCommerceAPIPath)
	api.GET("/products", f.list)
	api.POST("/products", f.create)
	api.GET("/products/:id", f.get)
	api.PUT("/products/:id", f.update)
	api.GET("/products/:id/variations", f.listVariations)
	api.POST("/products/:id/variations", f.createVariation)

	f.Server = httptest.NewServer(engine)
	t.Cleanup(f.Server.Close)
	return f
}

// Config returns an adapter configuration pointing at the fake store.
func (f *FakeWooCommerce) Config() *ecommerce.WooCommerceConfig {
	return ecommerce.NewWooCommerceConfig(f.Server.URL, FakeWooKey, FakeWooSecret)
}

// Product returns a stored product, or nil.
func (f *FakeWooCommerce) Product(id int64) *ecommerce.WooProduct {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id]
}

// Variations returns the variations stored under a product.
func (f *FakeWooCommerce) Variations(productID int64) []*ecommerce.WooVariation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*ecommerce.WooVariation(nil), f.variations[productID]...)
}

func (f *FakeWooCommerce) list(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*ecommerce.WooProduct, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.products[id])
	}
	c.Header("X-WP-Total", strconv.Itoa(len(out)))
	c.Header("X-WP-TotalPages", "1")
	c.JSON(http.StatusOK, out)
}

func (f *FakeWooCommerce) get(c *gin.Context) {
	id, ok := wooPathID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	p := f.products[id]
	f.mu.Unlock()
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "woocommerce_rest_product_invalid_id"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (f *FakeWooCommerce) create(c *gin.Context) {
	var p ecommerce.WooProduct
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "rest_invalid_json", "message": err.Error()})
		return
	}
	f.mu.Lock()
	p.ID = f.assign()
	f.products[p.ID] = &p
	f.mu.Unlock()
	c.JSON(http.StatusCreated, &p)
}

func (f *FakeWooCommerce) update(c *gin.Context) {
	id, ok := wooPathID(c)
	if !ok {
		return
	}
	var p ecommerce.WooProduct
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "rest_invalid_json", "message": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := f.products[id]
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "woocommerce_rest_product_invalid_id"})
		return
	}
	p.ID = id
	p.Variations = existing.Variations
	f.products[id] = &p
	c.JSON(http.StatusOK, &p)
}

func (f *FakeWooCommerce) listVariations(c *gin.Context) {
	id, ok := wooPathID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	out := append([]*ecommerce.WooVariation{}, f.variations[id]...)
	f.mu.Unlock()
	c.Header("X-WP-TotalPages", "1")
	c.JSON(http.StatusOK, out)
}

func (f *FakeWooCommerce) createVariation(c *gin.Context) {
	id, ok := wooPathID(c)
	if !ok {
		return
	}
	var v ecommerce.WooVariation
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "rest_invalid_json", "message": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	parent := f.products[id]
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "woocommerce_rest_product_invalid_id"})
		return
	}
	v.ID = f.assign()
	f.variations[id] = append(f.variations[id], &v)
	parent.Variations = append(parent.Variations, v.ID)
	c.JSON(http.StatusCreated, &v)
}

// assign must be called with mu held.
func (f *FakeWooCommerce) assign() int64 {
	f.nextID++
	return f.nextID
}

func wooPathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "rest_no_route"})
		return 0, false
	}
	return id, true
}
