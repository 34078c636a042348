package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentListResponse struct {
	Items []*domain.Comment `json:"items"`
	Total int64             `json:"total"`
}

func (h *CommentHandler) Add(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Add(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListByVideo(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items, total, err := h.comments.ListByVideo(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentListResponse{Items: items, Total: total})
}

func (h *CommentHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Update(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
