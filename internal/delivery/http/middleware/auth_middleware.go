package middleware

import (
	"net/http"
	"strings"

	"board/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyEmail    = "authEmail"
	ContextKeyNickName = "authNickName"
)

// AuthMiddleware validates bearer tokens on protected member routes.
type AuthMiddleware struct {
	issuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(issuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Authenticate verifies the Authorization header and exposes the token
// subject and nickname on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.issuer.Parse(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(ContextKeyEmail, claims.Subject)
		c.Set(ContextKeyNickName, claims.NickName)

		return next(c)
	}
}
