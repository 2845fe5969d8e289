package ecommerce

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ShopifyConfig holds configuration for Shopify Admin REST API integration
type ShopifyConfig struct {
	// ShopDomain is the store's myshopify domain, e.g. "acme.myshopify.com"
	ShopDomain string
	// AccessToken is the Admin API access token
	AccessToken string
	// APIVersion is the Admin API version, e.g. "2024-07"
	APIVersion string
	// BaseURL overrides the derived https://{ShopDomain} origin (tests, proxies)
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

const (
	// DefaultShopifyAPIVersion is the Admin API version used when none is configured
	DefaultShopifyAPIVersion = "2024-07"
	// ShopifyMaxVariants is the Shopify limit on variants per product
	ShopifyMaxVariants = 100
	// ShopifyMaxPageSize is the largest page Shopify returns
	ShopifyMaxPageSize = 250

	defaultPlatformTimeout = 30 * time.Second
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(shopDomain, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		ShopDomain:  shopDomain,
		AccessToken: accessToken,
		APIVersion:  DefaultShopifyAPIVersion,
		Timeout:     defaultPlatformTimeout,
	}
}

// Validate validates the Shopify configuration and fills defaults
func (c *ShopifyConfig) Validate() error {
	if c.ShopDomain == "" && c.BaseURL == "" {
		return ErrShopifyConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultShopifyAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultPlatformTimeout
	}
	return nil
}

// AdminURL returns the versioned Admin API root
func (c *ShopifyConfig) AdminURL() string {
	origin := strings.TrimRight(c.BaseURL, "/")
	if origin == "" {
		origin = "https://" + strings.TrimPrefix(strings.TrimPrefix(c.ShopDomain, "https://"), "http://")
	}
	return fmt.Sprintf("%s/admin/api/%s", origin, c.APIVersion)
}
