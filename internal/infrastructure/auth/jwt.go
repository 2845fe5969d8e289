// Package auth issues and validates the service tokens that guard the sync API.
package auth

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scopes granted to service tokens
const (
	ScopeSyncRead  = "sync:read"
	ScopeSyncWrite = "sync:write"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingClient    = errors.New("missing client in claims")
	ErrUnknownScope     = errors.New("unknown scope")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims represents the claims of a service token
type Claims struct {
	jwt.RegisteredClaims
	Client string   `json:"client"`
	Scopes []string `json:"scopes,omitempty"`
}

// IssuedToken is a signed service token
type IssuedToken struct {
	Token     string    `json:"token"`
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // Bearer
}

// TokenService signs and validates HS256 service tokens
type TokenService struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(cfg config.AuthConfig) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// IssueTokenInput contains input for token issuance
type IssueTokenInput struct {
	Client string
	Scopes []string
	// TTL overrides the configured lifetime when positive
	TTL time.Duration
}

// IssueToken signs a token for a client. Scopes must be known.
func (s *TokenService) IssueToken(input IssueTokenInput) (*IssuedToken, error) {
	client := strings.TrimSpace(input.Client)
	if client == "" {
		return nil, ErrMissingClient
	}
	for _, scope := range input.Scopes {
		if scope != ScopeSyncRead && scope != ScopeSyncWrite {
			return nil, errors.Join(ErrUnknownScope, errors.New(scope))
		}
	}
	ttl := input.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   client,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Client: client,
		Scopes: slices.Clone(input.Scopes),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{
		Token:     token,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates a token and returns its claims
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Client == "" {
		return nil, ErrMissingClient
	}
	return claims, nil
}

// HasScope checks if the claims grant a scope. sync:write implies sync:read.
func (c *Claims) HasScope(scope string) bool {
	if slices.Contains(c.Scopes, scope) {
		return true
	}
	return scope == ScopeSyncRead && slices.Contains(c.Scopes, ScopeSyncWrite)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
