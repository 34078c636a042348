package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
)

func dispatch(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"token mismatch", domain.ErrTokenMismatch, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"video not found", domain.ErrVideoNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"missing asset", domain.ErrMissingAsset, http.StatusBadRequest},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"upload failed", domain.ErrUploadFailed, http.StatusBadGateway},
		{"persistence failed", domain.ErrPersistenceFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := dispatch(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if body["error"] == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	// Services wrap sentinels with context; the mapping must survive that.
	rec := dispatch(t, fmt.Errorf("%w: upload thumbnail: connection reset", domain.ErrUploadFailed))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for wrapped upload failure, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec := dispatch(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected echo error code passed through, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec := dispatch(t, errors.New("driver: bad connection"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	// The internal cause must not leak.
	if body["error"] != "internal server error" {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}
