// Package pacing provides the inter-item pacing policies the sync service
// uses to stay under third-party rate limits.
package pacing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"golang.org/x/time/rate"
)

// Mode selects a pacing policy
type Mode string

const (
	ModeFixedDelay  Mode = "fixed"
	ModeTokenBucket Mode = "token_bucket"
	ModeNone        Mode = "none"
)

// DefaultDelay is the fixed inter-item delay
const DefaultDelay = 150 * time.Millisecond

// Config holds pacing configuration
type Config struct {
	Mode  Mode
	Delay time.Duration
	// QPS and Burst configure ModeTokenBucket
	QPS   float64
	Burst int
}

// New builds the pacer for cfg. An empty mode means ModeFixedDelay.
func New(cfg Config) (integration.Pacer, error) {
	switch Mode(strings.ToLower(string(cfg.Mode))) {
	case ModeFixedDelay, "":
		return NewFixedDelay(cfg.Delay), nil
	case ModeTokenBucket:
		return NewTokenBucket(cfg.QPS, cfg.Burst), nil
	case ModeNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("pacing: unknown mode %q", cfg.Mode)
	}
}

// ---------------------------------------------------------------------------
// FixedDelay
// ---------------------------------------------------------------------------

// FixedDelay sleeps a fixed duration on every Wait.
//
// Thread Safety: Safe for concurrent use.
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay creates a fixed delay pacer. A non-positive delay means DefaultDelay.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &FixedDelay{delay: delay}
}

// Delay returns the configured delay
func (p *FixedDelay) Delay() time.Duration {
	return p.delay
}

// Wait blocks for the delay or until ctx ends
func (p *FixedDelay) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ---------------------------------------------------------------------------
// TokenBucket
// ---------------------------------------------------------------------------

// TokenBucket paces items with golang.org/x/time/rate.
//
// Thread Safety: Safe for concurrent use.
type TokenBucket struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
	qps     float64
}

// NewTokenBucket creates a token bucket pacer. If burst is 0, it defaults
// to max(1, int(qps)); a non-positive qps means 1.
func NewTokenBucket(qps float64, burst int) *TokenBucket {
	if qps <= 0 {
		qps = 1
	}
	if burst <= 0 {
		burst = max(1, int(qps))
	}
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(qps), burst),
		qps:     qps,
	}
}

// Wait blocks until a token is available or ctx ends
func (p *TokenBucket) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// SetRate adjusts the rate, e.g. after a platform reports a new limit
func (p *TokenBucket) SetRate(qps float64) {
	if qps <= 0 {
		qps = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.qps = qps
	p.limiter.SetLimit(rate.Limit(qps))
}

// CurrentRate returns the current rate in QPS
func (p *TokenBucket) CurrentRate() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.qps
}

// ---------------------------------------------------------------------------
// None
// ---------------------------------------------------------------------------

// None never waits. It still honors a cancelled context.
type None struct{}

// Wait returns ctx.Err()
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ integration.Pacer = (*FixedDelay)(nil)
	_ integration.Pacer = (*TokenBucket)(nil)
	_ integration.Pacer = None{}
)
