package middleware

import (
	"context"
	"strings"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/labstack/echo/v4"
)

// AccountIDKey is the echo context key holding the authenticated account ID.
const AccountIDKey = "accountID"

// IdentityResolver maps a bearer token to an account ID. ok is false when
// the token is not one the resolver understands.
type IdentityResolver func(ctx context.Context, token string) (accountID uint, ok bool)

// TokenValidator validates the session tokens issued at login.
type TokenValidator interface {
	ValidateJWT(tokenString string) (*models.JwtCustomClaims, error)
}

// JWTResolver accepts tokens signed by this service.
func JWTResolver(tokens TokenValidator) IdentityResolver {
	return func(_ context.Context, token string) (uint, bool) {
		claims, err := tokens.ValidateJWT(token)
		if err != nil {
			return 0, false
		}
		return claims.AccountID, true
	}
}

// AuthConfig configures JWTAuthMiddlewareWithConfig.
type AuthConfig struct {
	// Resolvers are tried in order until one recognises the token.
	Resolvers []IdentityResolver

	// QueryTokenPaths are route paths that also accept the token as a
	// `token` query parameter. Browsers cannot set headers on websocket
	// upgrades.
	QueryTokenPaths []string
}

// JWTAuthMiddleware resolves the caller from the Authorization bearer token,
// trying each resolver in order.
func JWTAuthMiddleware(resolvers ...IdentityResolver) echo.MiddlewareFunc {
	return JWTAuthMiddlewareWithConfig(AuthConfig{Resolvers: resolvers})
}

func JWTAuthMiddlewareWithConfig(config AuthConfig) echo.MiddlewareFunc {
	queryPaths := make(map[string]struct{}, len(config.QueryTokenPaths))
	for _, p := range config.QueryTokenPaths {
		queryPaths[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, allowQuery := queryPaths[c.Path()]
			token, err := bearerToken(c, allowQuery)
			if err != nil {
				return err
			}

			for _, resolve := range config.Resolvers {
				if accountID, ok := resolve(c.Request().Context(), token); ok && accountID != 0 {
					c.Set(AccountIDKey, accountID)
					return next(c)
				}
			}
			return apperrors.New(apperrors.KindUnauthenticated, "invalid or expired token")
		}
	}
}

func bearerToken(c echo.Context, allowQuery bool) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if token := c.QueryParam("token"); allowQuery && token != "" {
			return token, nil
		}
		return "", apperrors.New(apperrors.KindUnauthenticated, "missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.New(apperrors.KindUnauthenticated, "authorization header must be in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}
