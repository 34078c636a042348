package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type LikeHandler struct {
	likes ports.LikeService
}

func NewLikeHandler(likes ports.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

// Toggle likes or unlikes the target named by the route: /likes/:target/:id
// where target is one of video, comment, tweet.
func (h *LikeHandler) Toggle(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	liked, err := h.likes.Toggle(c.Request().Context(), userID,
		domain.LikeTarget(c.Param("target")), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: liked})
}
