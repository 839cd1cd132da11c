package middleware

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"webshop/internal/auth"
	"webshop/internal/model"
)

// IdentityKey is the echo context key holding the verified *auth.Claims.
const IdentityKey = "identity"

const bearerPrefix = "Bearer "

// AccessTokenValidator verifies access tokens statelessly.
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// AuthMiddleware provides the token verifier and role guard for protected routes.
type AuthMiddleware struct {
	tokens AccessTokenValidator
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens AccessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer access token. A missing or malformed
// Authorization header yields 401, a token that fails verification yields
// 403. Neither response carries a body and the handler is not invoked.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := m.tokens.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithClaims(req.Context(), claims)))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			if hasBearerToken(c.Request()) {
				return &echo.HTTPError{Code: http.StatusForbidden}
			}
			return &echo.HTTPError{Code: http.StatusUnauthorized}
		},
	})
}

// RequireRole rejects callers whose verified role differs from role with 401.
// It must be used AFTER Authenticate and trusts the identity it attached.
func (m *AuthMiddleware) RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := IdentityFrom(c)
			if !ok || claims.Role != role {
				return &echo.HTTPError{Code: http.StatusUnauthorized}
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the claims attached by Authenticate.
func IdentityFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(IdentityKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func hasBearerToken(r *http.Request) bool {
	value := r.Header.Get(echo.HeaderAuthorization)
	if len(value) <= len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return false
	}
	return strings.TrimSpace(value[len(bearerPrefix):]) != ""
}
