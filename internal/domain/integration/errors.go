package integration

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Configuration errors. These are the only errors the sync service
	// returns to its caller instead of folding them into a SyncResult.
	ErrAdapterNotConfigured     = errors.New("integration: platform adapter not configured")
	ErrTransformerNotConfigured = errors.New("integration: platform transformer not configured")
	ErrUnsupportedPlatform      = errors.New("integration: unsupported platform")

	// Platform errors
	ErrProductNotFound         = errors.New("integration: platform product not found")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPayloadPlatformMismatch = errors.New("integration: payload belongs to another platform")

	// Transformation errors
	ErrVariantLimitExceeded    = errors.New("integration: variant count exceeds destination limit")
	ErrInvalidCanonicalProduct = errors.New("integration: invalid canonical product")

	// Orchestration errors
	ErrSyncCancelled = errors.New("integration: sync cancelled")

	// Mapping errors
	ErrMappingInvalidCanonicalID  = errors.New("integration: invalid canonical product ID")
	ErrMappingInvalidPlatformCode = errors.New("integration: invalid platform code")
	ErrMappingInvalidPlatformID   = errors.New("integration: invalid platform product ID")
	ErrMappingInvalidSKU          = errors.New("integration: invalid variant SKU")
	ErrMappingNotFound            = errors.New("integration: sync mapping not found")

	// Canonical store errors
	ErrCanonicalProductNotFound = errors.New("integration: canonical product not found")
)

// maxErrorBodyLength bounds how much of an upstream body ends up in messages.
const maxErrorBodyLength = 512

// UpstreamAPIError is a non-2xx response from a platform.
type UpstreamAPIError struct {
	Platform   PlatformCode
	Operation  string
	StatusCode int
	Body       string
}

func (e *UpstreamAPIError) Error() string {
	return fmt.Sprintf("integration: %s %s returned HTTP %d: %s", e.Platform, e.Operation, e.StatusCode, truncateBody(e.Body))
}

// truncateBody cuts body to at most maxErrorBodyLength bytes on a rune boundary.
func truncateBody(body string) string {
	if len(body) <= maxErrorBodyLength {
		return body
	}
	cut := maxErrorBodyLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}

// Is makes a 404 response match ErrProductNotFound.
func (e *UpstreamAPIError) Is(target error) bool {
	return target == ErrProductNotFound && e.StatusCode == 404
}

// NetworkError is a transport level failure talking to a platform.
type NetworkError struct {
	Platform  PlatformCode
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("integration: %s %s network failure: %v", e.Platform, e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TransformationError signals that a raw payload lacks the identity or title
// fields needed to build a canonical product, or is of the wrong shape.
type TransformationError struct {
	Platform PlatformCode
	Field    string
	Reason   string
}

func (e *TransformationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("integration: %s transformation failed: %s", e.Platform, e.Reason)
	}
	return fmt.Sprintf("integration: %s transformation failed on %s: %s", e.Platform, e.Field, e.Reason)
}

// NewTransformationError creates a TransformationError
func NewTransformationError(platform PlatformCode, field, reason string) *TransformationError {
	return &TransformationError{Platform: platform, Field: field, Reason: reason}
}

// IsConfigurationError reports whether err means the orchestrator itself was
// misused (missing adapter or transformer, unknown platform).
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrAdapterNotConfigured) ||
		errors.Is(err, ErrTransformerNotConfigured) ||
		errors.Is(err, ErrUnsupportedPlatform)
}

// IsUpstreamError reports whether err came from a platform round trip,
// either as a non-2xx response or a transport failure.
func IsUpstreamError(err error) bool {
	var apiErr *UpstreamAPIError
	var netErr *NetworkError
	return errors.As(err, &apiErr) || errors.As(err, &netErr)
}
