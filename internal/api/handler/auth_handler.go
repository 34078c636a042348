package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// AuthHandler exposes the session lifecycle plus registration over HTTP. Both
// tokens are returned in the body and mirrored as HTTP-only cookies.
type AuthHandler struct {
	sessions     ports.SessionService
	users        ports.UserService
	stagingDir   string
	secureCookie bool
}

func NewAuthHandler(sessions ports.SessionService, users ports.UserService, stagingDir string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		users:        users,
		stagingDir:   stagingDir,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	User         *domain.User `json:"user,omitempty"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates a new account from a multipart form: text fields plus a
// required avatar file and optional coverImage file.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	avatarPath, err := stageFormFile(c, "avatar", h.stagingDir)
	if err != nil {
		return err
	}
	coverPath, err := stageFormFile(c, "coverImage", h.stagingDir)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		FullName:       c.FormValue("fullname"),
		Email:          c.FormValue("email"),
		Username:       c.FormValue("username"),
		Password:       c.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates by username or email and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.sessions.Authenticate(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh exchanges the presented refresh token for a new pair. The token is
// read from the refreshToken cookie, falling back to the request body.
//
// @Summary      Rotate the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	presented := ""
	if cookie, err := c.Cookie(refreshCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			presented = req.RefreshToken
		}
	}
	if presented == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no refresh token provided")
	}

	pair, err := h.sessions.Rotate(c.Request().Context(), presented)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revokes the caller's refresh token and clears both cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Terminate(c.Request().Context(), userID); err != nil {
		return err
	}

	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair *ports.TokenPair) {
	c.SetCookie(h.sessionCookie(accessCookie, pair.AccessToken, 0))
	c.SetCookie(h.sessionCookie(refreshCookie, pair.RefreshToken, 0))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(h.sessionCookie(accessCookie, "", -time.Hour))
	c.SetCookie(h.sessionCookie(refreshCookie, "", -time.Hour))
}

func (h *AuthHandler) sessionCookie(name, value string, expireIn time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if expireIn != 0 {
		cookie.Expires = time.Now().Add(expireIn)
		cookie.MaxAge = -1
	}
	return cookie
}
