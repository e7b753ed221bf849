package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/internal/service"
)

// MediaHandler handles engagement (favorites, completed, watched) requests
type MediaHandler struct {
	engagement service.EngagementService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(engagement service.EngagementService) *MediaHandler {
	return &MediaHandler{
		engagement: engagement,
	}
}

// AddFavorite adds a title to the caller's favorites
func (h *MediaHandler) AddFavorite(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fav, err := h.engagement.AddFavorite(c.Request.Context(), userIDFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fav)
}

// RemoveFavorite removes a title from the caller's favorites
func (h *MediaHandler) RemoveFavorite(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.RemoveFavorite(c.Request.Context(), userIDFrom(c), titleID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "favorite removed"})
}

// CheckFavorite reports whether a title is favorited
func (h *MediaHandler) CheckFavorite(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}

	present, err := h.engagement.IsFavorite(c.Request.Context(), userIDFrom(c), titleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PresenceResponse{Present: present})
}

// ListFavorites lists the caller's favorites
func (h *MediaHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.engagement.ListFavorites(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// MarkCompleted marks a series as completed
func (h *MediaHandler) MarkCompleted(c *gin.Context) {
	var req dto.MarkCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cs, err := h.engagement.MarkCompleted(c.Request.Context(), userIDFrom(c), req.TitleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cs)
}

// UnmarkCompleted removes a series from the completed list
func (h *MediaHandler) UnmarkCompleted(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.UnmarkCompleted(c.Request.Context(), userIDFrom(c), titleID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "series unmarked"})
}

// CheckCompleted reports whether a series is marked completed
func (h *MediaHandler) CheckCompleted(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}

	present, err := h.engagement.IsCompleted(c.Request.Context(), userIDFrom(c), titleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PresenceResponse{Present: present})
}

// ListCompleted lists the caller's completed series
func (h *MediaHandler) ListCompleted(c *gin.Context) {
	series, err := h.engagement.ListCompleted(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// MarkWatched marks an episode as watched
func (h *MediaHandler) MarkWatched(c *gin.Context) {
	var req dto.MarkWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	we, err := h.engagement.MarkWatched(c.Request.Context(), userIDFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, we)
}

// UnmarkWatched removes an episode from the watched list
func (h *MediaHandler) UnmarkWatched(c *gin.Context) {
	key, ok := episodeKeyParams(c)
	if !ok {
		return
	}

	if err := h.engagement.UnmarkWatched(c.Request.Context(), userIDFrom(c), key); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "episode unmarked"})
}

// CheckWatched reports whether an episode is marked watched
func (h *MediaHandler) CheckWatched(c *gin.Context) {
	key, ok := episodeKeyParams(c)
	if !ok {
		return
	}

	present, err := h.engagement.IsWatched(c.Request.Context(), userIDFrom(c), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PresenceResponse{Present: present})
}

// ListWatched lists the caller's watched episodes
func (h *MediaHandler) ListWatched(c *gin.Context) {
	episodes, err := h.engagement.ListWatched(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, episodes)
}

// Profile returns the combined "my data" view. An unknown user yields an
// empty body rather than an error.
func (h *MediaHandler) Profile(c *gin.Context) {
	profile, err := h.engagement.UserProfile(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func titleIDParam(c *gin.Context) (int64, bool) {
	titleID, err := strconv.ParseInt(c.Param("titleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "title id must be an integer",
		})
		return 0, false
	}
	return titleID, true
}

func episodeKeyParams(c *gin.Context) (domain.EpisodeKey, bool) {
	titleID, err := strconv.ParseInt(c.Param("titleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "title id must be an integer",
		})
		return domain.EpisodeKey{}, false
	}

	season, err := strconv.Atoi(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "season must be an integer",
		})
		return domain.EpisodeKey{}, false
	}

	episode, err := strconv.Atoi(c.Param("episode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "episode must be an integer",
		})
		return domain.EpisodeKey{}, false
	}

	return domain.EpisodeKey{TitleID: titleID, Season: season, Episode: episode}, true
}
