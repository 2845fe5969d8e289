package ecommerce

import (
	"errors"
	"strings"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// WooCommerceConfig holds configuration for WooCommerce REST API v3 integration
type WooCommerceConfig struct {
	// BaseURL is the WordPress site origin, e.g. "https://shop.example.com"
	BaseURL string
	// ConsumerKey is the REST API consumer key (ck_...)
	ConsumerKey string
	// ConsumerSecret is the REST API consumer secret (cs_...)
	ConsumerSecret string
	// WeightUnit is the store-wide weight unit (WooCommerce keeps it in settings)
	WeightUnit string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

const (
	// WooCommerceAPIPath is the REST namespace for products
	WooCommerceAPIPath = "/wp-json/wc/v3"
	// WooCommerceMaxPageSize is the largest page WooCommerce returns
	WooCommerceMaxPageSize = 100
	// DefaultWooCommerceWeightUnit is used when the store unit is not configured
	DefaultWooCommerceWeightUnit = "kg"
)

// Errors for WooCommerce configuration
var (
	ErrWooCommerceConfigMissingBaseURL        = errors.New("woocommerce: base URL is required")
	ErrWooCommerceConfigMissingConsumerKey    = errors.New("woocommerce: consumer key is required")
	ErrWooCommerceConfigMissingConsumerSecret = errors.New("woocommerce: consumer secret is required")
	ErrWooCommerceConfigInvalidWeightUnit     = errors.New("woocommerce: unsupported weight unit")
)

// NewWooCommerceConfig creates a new WooCommerce configuration with defaults
func NewWooCommerceConfig(baseURL, consumerKey, consumerSecret string) *WooCommerceConfig {
	return &WooCommerceConfig{
		BaseURL:        baseURL,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		WeightUnit:     DefaultWooCommerceWeightUnit,
		Timeout:        defaultPlatformTimeout,
	}
}

// Validate validates the WooCommerce configuration and fills defaults
func (c *WooCommerceConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrWooCommerceConfigMissingBaseURL
	}
	if c.ConsumerKey == "" {
		return ErrWooCommerceConfigMissingConsumerKey
	}
	if c.ConsumerSecret == "" {
		return ErrWooCommerceConfigMissingConsumerSecret
	}
	if c.WeightUnit == "" {
		c.WeightUnit = DefaultWooCommerceWeightUnit
	}
	if integration.ParseWeightUnit(c.WeightUnit) == nil {
		return ErrWooCommerceConfigInvalidWeightUnit
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultPlatformTimeout
	}
	return nil
}

// APIURL returns the products API root
func (c *WooCommerceConfig) APIURL() string {
	return strings.TrimRight(c.BaseURL, "/") + WooCommerceAPIPath
}
