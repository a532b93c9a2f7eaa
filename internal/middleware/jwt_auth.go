package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/labstack/echo/v4"
)

const viewerKey = "viewer"

// SessionVerifier resolves a bearer token to a viewer.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (models.Viewer, error)
}

// OptionalAuth resolves the viewer when a valid bearer token is present and lets every other
// request through as anonymous.
func OptionalAuth(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			viewer := models.Anonymous()
			if token, ok := bearerToken(c); ok {
				if v, err := verifier.Verify(c.Request().Context(), token); err == nil {
					viewer = v
				}
			}
			c.Set(viewerKey, viewer)
			return next(c)
		}
	}
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked session token.
func JWTAuthMiddleware(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			viewer, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			c.Set(viewerKey, viewer)
			return next(c)
		}
	}
}

// ViewerFromContext returns the viewer stored by either middleware, or an anonymous viewer.
func ViewerFromContext(c echo.Context) models.Viewer {
	if v, ok := c.Get(viewerKey).(models.Viewer); ok {
		return v
	}
	return models.Anonymous()
}

// Expecting "Bearer <token>"
func bearerToken(c echo.Context) (string, bool) {
	parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
