package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthClaimsKey = "auth_claims"
	AuthClientKey = "auth_client"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// ServiceAuthConfig holds configuration for service token middleware
type ServiceAuthConfig struct {
	// Tokens is required for token validation
	Tokens *auth.TokenService
	// Revocations is optional for checking revoked tokens
	Revocations auth.RevocationList
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// ServiceAuth requires a valid bearer service token on every request
func ServiceAuth(cfg ServiceAuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortAuth(c, log, dto.ErrCodeUnauthorized, "Missing authorization header", nil)
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortAuth(c, log, dto.ErrCodeUnauthorized, "Invalid authorization header format", nil)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortAuth(c, log, dto.ErrCodeUnauthorized, "Missing token", nil)
			return
		}

		claims, err := cfg.Tokens.ValidateToken(tokenString)
		if err != nil {
			code, message := dto.ErrCodeTokenInvalid, "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code, message = dto.ErrCodeTokenExpired, "Token has expired"
			}
			abortAuth(c, log, code, message, err)
			return
		}

		if cfg.Revocations != nil && claims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// fail open: the revocation store is advisory
				log.Error("Failed to check token revocation",
					zap.String("jti", claims.ID),
					zap.Error(err))
			case revoked:
				abortAuth(c, log, dto.ErrCodeTokenRevoked, "Token has been revoked", auth.ErrTokenRevoked)
				return
			}
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthClientKey, claims.Client)

		ctx := c.Request.Context()
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("client", claims.Client)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireScope rejects requests whose token lacks scope. It is a no-op when
// no claims are present, so routes stay open when authentication is disabled.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetAuthClaims(c)
		if claims == nil {
			c.Next()
			return
		}
		if !claims.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Token lacks scope "+scope,
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// ScopeForMethod grants read access to safe methods and requires write
// access for everything else
func ScopeForMethod() gin.HandlerFunc {
	read, write := RequireScope(auth.ScopeSyncRead), RequireScope(auth.ScopeSyncWrite)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			read(c)
		default:
			write(c)
		}
	}
}

func abortAuth(c *gin.Context, log *zap.Logger, code, message string, err error) {
	log.Warn("Service authentication failed",
		zap.Error(err),
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
	)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetAuthClaims retrieves service token claims from gin.Context
func GetAuthClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(AuthClaimsKey); exists {
		if authClaims, ok := claims.(*auth.Claims); ok {
			return authClaims
		}
	}
	return nil
}

// GetAuthClient returns the authenticated client name, or "" when anonymous
func GetAuthClient(c *gin.Context) string {
	return c.GetString(AuthClientKey)
}
