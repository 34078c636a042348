package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

// UserHandler exposes account management for the authenticated user.
type UserHandler struct {
	users      ports.UserService
	stagingDir string
}

func NewUserHandler(users ports.UserService, stagingDir string) *UserHandler {
	return &UserHandler{users: users, stagingDir: stagingDir}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type updateAccountRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the old password and stores a new hash.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password changed"})
}

// UpdateAccount updates the mutable text fields of the profile.
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateAccount(c.Request().Context(), userID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar replaces the avatar from a multipart "avatar" file.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	return h.updateProfileAsset(c, "avatar", h.users.UpdateAvatar)
}

// UpdateCoverImage replaces the cover image from a multipart "coverImage" file.
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateProfileAsset(c, "coverImage", h.users.UpdateCoverImage)
}

func (h *UserHandler) updateProfileAsset(
	c echo.Context,
	field string,
	update func(ctx context.Context, userID, localPath string) (*domain.User, error),
) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	path, err := stageFormFile(c, field, h.stagingDir)
	if err != nil {
		return err
	}
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}

	user, err := update(c.Request().Context(), userID, path)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
