package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EngagementHandler struct {
	engagementService *service.EngagementService
}

func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

type CommentRequest struct {
	VideoID uint64 `json:"video_id" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Rating  int    `json:"rating"`
}

type LikeRequest struct {
	VideoID uint64 `json:"video_id" binding:"required"`
	Liked   bool   `json:"liked"`
}

// Comment adds a comment with a 1-5 rating and echoes it back with the
// session username.
// POST /comment
func (h *EngagementHandler) Comment(c *gin.Context) {
	var req CommentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all fields!")
		return
	}

	claims := c.MustGet("claims").(*utils.SessionClaims)

	view, err := h.engagementService.AddComment(req.VideoID, claims.UserID, claims.Username, req.Comment, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			fail(c, http.StatusBadRequest, "Rating must be between 1 and 5!")
		case errors.Is(err, service.ErrEmptyComment):
			fail(c, http.StatusBadRequest, "Please fill in all fields!")
		case errors.Is(err, service.ErrVideoNotFound):
			fail(c, http.StatusBadRequest, "Invalid video ID!")
		default:
			logger.Log.Error("Failed to post comment",
				zap.Uint64("video_id", req.VideoID),
				zap.String("user_id", claims.UserID.String()),
				zap.Error(err),
			)
			fail(c, http.StatusInternalServerError, "Error posting comment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"username":   view.Username,
		"comment":    view.Comment,
		"rating":     view.Rating,
		"created_at": view.CreatedAt.Format(time.RFC3339),
	})
}

// Like toggles the session user's like on a video and returns the recomputed
// like count. An absent or false "liked" field unlikes.
// POST /like
func (h *EngagementHandler) Like(c *gin.Context) {
	var req LikeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Video ID is required!")
		return
	}

	claims := c.MustGet("claims").(*utils.SessionClaims)

	count, err := h.engagementService.ToggleLike(req.VideoID, claims.UserID, claims.Username, req.Liked)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoNotFound):
			fail(c, http.StatusBadRequest, "Invalid video ID!")
		default:
			logger.Log.Error("Failed to toggle like",
				zap.Uint64("video_id", req.VideoID),
				zap.String("user_id", claims.UserID.String()),
				zap.Error(err),
			)
			fail(c, http.StatusInternalServerError, "Error updating like")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"like_count": count,
	})
}
