package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

// ViewEnqueuer accepts playback view events for asynchronous counting.
type ViewEnqueuer interface {
	Enqueue(event domain.ViewEvent)
}

// VideoHandler exposes video publishing and management.
type VideoHandler struct {
	videos     ports.VideoService
	views      ViewEnqueuer
	stagingDir string
}

func NewVideoHandler(videos ports.VideoService, views ViewEnqueuer, stagingDir string) *VideoHandler {
	return &VideoHandler{videos: videos, views: views, stagingDir: stagingDir}
}

type updateVideoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type listVideosResponse struct {
	Items []*domain.Video `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// Publish creates a video from a multipart form: title and description text
// fields plus required videoFile and thumbnail files.
//
// @Summary      Publish a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.Video
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) Publish(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	videoPath, err := stageFormFile(c, "videoFile", h.stagingDir)
	if err != nil {
		return err
	}
	thumbPath, err := stageFormFile(c, "thumbnail", h.stagingDir)
	if err != nil {
		return err
	}

	video, err := h.videos.Publish(c.Request().Context(), ports.PublishVideoInput{
		OwnerID:       userID,
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, video)
}

// Get returns one video and enqueues a view event for the caller.
func (h *VideoHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	video, err := h.videos.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	// Counting happens off the request path; per-video ordering is the
	// dispatcher's job.
	h.views.Enqueue(domain.ViewEvent{VideoID: video.ID, ViewerID: userID, At: time.Now().UTC()})

	return c.JSON(http.StatusOK, video)
}

// List returns a page of videos filtered by owner, title substring, and
// published state.
func (h *VideoHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.videos.List(c.Request().Context(), ports.ListVideosFilter{
		OwnerID:       c.QueryParam("owner_id"),
		TitleContains: c.QueryParam("query"),
		PublishedOnly: c.QueryParam("published") != "false",
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listVideosResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Update changes the title and description of an owned video.
func (h *VideoHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videos.Update(c.Request().Context(), userID, c.Param("id"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, video)
}

// TogglePublish flips the published flag of an owned video.
func (h *VideoHandler) TogglePublish(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	video, err := h.videos.TogglePublish(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, video)
}

// Delete removes an owned video and its stored media.
func (h *VideoHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.videos.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChannelStats returns dashboard totals for the authenticated channel.
func (h *VideoHandler) ChannelStats(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.videos.ChannelStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
