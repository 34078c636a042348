package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/ports"
	"github.com/vidtube/platform/internal/pkg/token"
)

func newTestIssuer() *token.Issuer {
	return token.NewIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func signAccess(t *testing.T, issuer *token.Issuer) string {
	t.Helper()
	signed, err := issuer.Sign(ports.TokenClaims{UserID: "user_1", Username: "alice"}, ports.TokenClassAccess)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signAccess(t, issuer))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(issuer)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user_1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxUsername) != "alice" {
			t.Fatalf("username not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: signAccess(t, issuer)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTestIssuer())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+signAccess(t, issuer))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer()

	// A refresh token must never pass as an access credential.
	refresh, err := issuer.Sign(ports.TokenClaims{UserID: "user_1"}, ports.TokenClassRefresh)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("access-secret", "refresh-secret", time.Nanosecond, time.Hour)

	signed, err := issuer.Sign(ports.TokenClaims{UserID: "user_1"}, ports.TokenClassAccess)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTestIssuer())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
