package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Only the message of
	// the sentinel (or the wrapped input error) crosses the boundary; store
	// internals never do.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrTokenMismatch):
		// Replay of a superseded refresh token. Deliberately logged here as
		// well so the security signal survives even if the service-level log
		// is filtered out.
		log.Warn().Str("path", c.Path()).Msg("superseded refresh token replayed")
		return http.StatusUnauthorized, "refresh token no longer valid"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrVideoNotFound):
		return http.StatusNotFound, "video not found"
	case errors.Is(err, domain.ErrTweetNotFound):
		return http.StatusNotFound, "tweet not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrMissingAsset), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("blob store upload failed")
		return http.StatusBadGateway, "asset upload failed"
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("record persistence failed")
		return http.StatusInternalServerError, "failed to persist record"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
