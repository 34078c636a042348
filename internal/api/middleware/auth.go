package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// Auth validates the access token and injects the identity context. The
// token is read from the Authorization header, falling back to the
// accessToken cookie the login handler sets.
//
// The check is stateless: no credential-store lookup happens here, so
// revocation of an access token is bounded by its short expiry window.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := tokens.Verify(raw, ports.TokenClassAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired access token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Username)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}
