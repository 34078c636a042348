package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/ports"
)

type TweetHandler struct {
	tweets ports.TweetService
}

func NewTweetHandler(tweets ports.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

type tweetRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

func (h *TweetHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tweet, err := h.tweets.Create(c.Request().Context(), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tweet)
}

func (h *TweetHandler) ListByUser(c echo.Context) error {
	tweets, err := h.tweets.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tweets)
}

func (h *TweetHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tweet, err := h.tweets.Update(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tweet)
}

func (h *TweetHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.tweets.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
