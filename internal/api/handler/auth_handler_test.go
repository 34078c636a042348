package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/api/middleware"
	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type stubSessionService struct {
	authenticateFn func(ctx context.Context, identifier, password string) (*ports.TokenPair, *domain.User, error)
	rotateFn       func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	terminateFn    func(ctx context.Context, userID string) error
}

func (s *stubSessionService) Authenticate(ctx context.Context, identifier, password string) (*ports.TokenPair, *domain.User, error) {
	return s.authenticateFn(ctx, identifier, password)
}

func (s *stubSessionService) Rotate(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.rotateFn(ctx, refreshToken)
}

func (s *stubSessionService) Terminate(ctx context.Context, userID string) error {
	return s.terminateFn(ctx, userID)
}

type stubUserService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) GetByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func (s *stubUserService) UpdateAccount(context.Context, string, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateAvatar(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateCoverImage(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	sessions := &stubSessionService{
		authenticateFn: func(_ context.Context, identifier, password string) (*ports.TokenPair, *domain.User, error) {
			if identifier != "alice" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s / %s", identifier, password)
			}
			return &ports.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"},
				&domain.User{ID: "user_1", Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	body := strings.NewReader(`{"identifier":"alice","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "acc-1" || resp.RefreshToken != "ref-1" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	access := cookieByName(rec, "accessToken")
	refresh := cookieByName(rec, "refreshToken")
	if access == nil || refresh == nil {
		t.Fatalf("expected both session cookies")
	}
	if access.Value != "acc-1" || refresh.Value != "ref-1" {
		t.Fatalf("unexpected cookie values: %s / %s", access.Value, refresh.Value)
	}
	if !access.HttpOnly || !refresh.HttpOnly {
		t.Fatalf("session cookies must be HttpOnly")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewAuthHandler(&stubSessionService{}, &stubUserService{}, t.TempDir(), false)

	body := strings.NewReader(`{"identifier":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	sessions := &stubSessionService{
		authenticateFn: func(context.Context, string, string) (*ports.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	body := strings.NewReader(`{"identifier":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passed through, got %v", err)
	}
}

func TestAuthHandler_Refresh_FromCookie(t *testing.T) {
	e := echo.New()

	sessions := &stubSessionService{
		rotateFn: func(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "ref-1" {
				t.Fatalf("unexpected presented token: %s", refreshToken)
			}
			return &ports.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"}, nil
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "ref-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookie := cookieByName(rec, "refreshToken"); cookie == nil || cookie.Value != "ref-2" {
		t.Fatalf("expected rotated refresh cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Refresh_FromBody(t *testing.T) {
	e := echo.New()

	sessions := &stubSessionService{
		rotateFn: func(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "ref-1" {
				t.Fatalf("unexpected presented token: %s", refreshToken)
			}
			return &ports.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"}, nil
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	body := strings.NewReader(`{"refresh_token":"ref-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_NoToken(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubSessionService{}, &stubUserService{}, t.TempDir(), false)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Refresh(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Refresh_StaleToken(t *testing.T) {
	e := echo.New()

	sessions := &stubSessionService{
		rotateFn: func(context.Context, string) (*ports.TokenPair, error) {
			return nil, domain.ErrTokenMismatch
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch passed through, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()

	terminated := ""
	sessions := &stubSessionService{
		terminateFn: func(_ context.Context, userID string) error {
			terminated = userID
			return nil
		},
	}
	h := NewAuthHandler(sessions, &stubUserService{}, t.TempDir(), false)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "user_1")
	c.Set(middleware.CtxUsername, "alice")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if terminated != "user_1" {
		t.Fatalf("expected session user_1 terminated, got %q", terminated)
	}

	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := cookieByName(rec, name)
		if cookie == nil {
			t.Fatalf("expected %s cookie to be rewritten", name)
		}
		if cookie.Value != "" {
			t.Fatalf("expected %s cookie cleared, got %q", name, cookie.Value)
		}
	}
}

func TestAuthHandler_Logout_NoIdentity(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubSessionService{}, &stubUserService{}, t.TempDir(), false)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Logout(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Register_Multipart(t *testing.T) {
	e := echo.New()
	stagingDir := t.TempDir()

	users := &stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.AvatarPath == "" {
				t.Fatalf("expected staged avatar path")
			}
			if _, err := os.Stat(input.AvatarPath); err != nil {
				t.Fatalf("staged avatar missing: %v", err)
			}
			if input.CoverImagePath != "" {
				t.Fatalf("expected empty cover path when not uploaded")
			}
			return &domain.User{ID: "user_1", Username: input.Username, Email: input.Email}, nil
		},
	}
	h := NewAuthHandler(&stubSessionService{}, users, stagingDir, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("fullname", "Alice Doe")
	_ = mw.WriteField("email", "alice@example.com")
	_ = mw.WriteField("username", "alice")
	_ = mw.WriteField("password", "s3cret")
	fw, err := mw.CreateFormFile("avatar", "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := echo.New()

	users := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(&stubSessionService{}, users, t.TempDir(), false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("username", "alice")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passed through, got %v", err)
	}
}
