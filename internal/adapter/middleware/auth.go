package middleware

import (
	"net/http"
	"strings"

	"creditos-backoffice/internal/auth"
	userDomain "creditos-backoffice/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// JWTAuth validates the bearer token, loads the user and stores it in the
// echo context under "actor". Inactive or deleted users are rejected.
func JWTAuth(issuer *auth.TokenIssuer, users userDomain.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(raw, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization must be a bearer token"})
			}

			claims, err := issuer.Parse(strings.TrimSpace(raw[len(prefix):]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			u, err := users.GetByUserID(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
			}
			if !u.Activo {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "user is inactive"})
			}

			c.Set(actorContextKey, u)
			return next(c)
		}
	}
}

// Actor returns the authenticated user set by JWTAuth, or nil.
func Actor(c echo.Context) *userDomain.User {
	u, _ := c.Get(actorContextKey).(*userDomain.User)
	return u
}
