package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/api/middleware"
)

// ctxIdentity extracts the identity context injected by the Auth middleware
// and fast-fails before any service call when it is absent.
func ctxIdentity(c echo.Context) (userID, username string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ = c.Get(middleware.CtxUsername).(string)
	return userID, username, nil
}
