package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recentVideoLimit caps the landing page feed.
const recentVideoLimit = 12

type VideoHandler struct {
	videoService      *service.VideoService
	engagementService *service.EngagementService
	uploadService     *service.UploadService
}

func NewVideoHandler(
	videoService *service.VideoService,
	engagementService *service.EngagementService,
	uploadService *service.UploadService,
) *VideoHandler {
	return &VideoHandler{
		videoService:      videoService,
		engagementService: engagementService,
		uploadService:     uploadService,
	}
}

// Index lists the newest videos for the landing feed.
// GET /
func (h *VideoHandler) Index(c *gin.Context) {
	videos, err := h.videoService.ListRecent(recentVideoLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "An error occurred while loading videos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"videos":  videos,
	})
}

// Shorts lists the whole catalog with comments and engagement counts.
// GET /shorts
func (h *VideoHandler) Shorts(c *gin.Context) {
	videos, err := h.videoService.ListWithEngagement()
	if err != nil {
		fail(c, http.StatusInternalServerError, "An error occurred while loading videos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"videos":  videos,
	})
}

// Dashboard lists the creator's own videos.
// GET /dashboard
func (h *VideoHandler) Dashboard(c *gin.Context) {
	claims := c.MustGet("claims").(*utils.SessionClaims)

	videos, err := h.videoService.ListByUploader(claims.UserID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "An error occurred while loading videos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"videos":  videos,
	})
}

// Watch returns a single video with its comments.
// GET /watch/:id
func (h *VideoHandler) Watch(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid video ID!")
		return
	}

	video, err := h.videoService.GetByID(videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			fail(c, http.StatusNotFound, "Video not found!")
			return
		}
		fail(c, http.StatusInternalServerError, "An error occurred while loading the video.")
		return
	}

	comments, err := h.engagementService.ListCommentsForVideo(videoID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "An error occurred while loading the video.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"video":    video,
		"comments": comments,
	})
}

// Upload creates a video record from a multipart submission carrying either a
// media file or an external URL.
// POST /upload
func (h *VideoHandler) Upload(c *gin.Context) {
	claims := c.MustGet("claims").(*utils.SessionClaims)

	fields := service.VideoFields{
		Title:     c.PostForm("title"),
		Publisher: c.PostForm("publisher"),
		Producer:  c.PostForm("producer"),
		Genre:     c.PostForm("genre"),
		AgeRating: c.PostForm("age_rating"),
	}

	if fields.Title == "" || fields.Publisher == "" || fields.AgeRating == "" {
		fail(c, http.StatusBadRequest, "Please fill in all required fields!")
		return
	}

	// Absent file is fine; the URL form field is the fallback.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	mediaURL, err := h.uploadService.AcceptSubmission(c.Request.Context(), file, c.PostForm("url"))
	if err != nil {
		if errors.Is(err, service.ErrNoMediaProvided) {
			fail(c, http.StatusBadRequest, "Please provide a video file or URL!")
			return
		}
		logger.Log.Error("Media submission failed",
			zap.String("uploader_id", claims.UserID.String()),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "An error occurred while uploading the video.")
		return
	}
	fields.URL = mediaURL

	video, err := h.videoService.Create(fields, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrMissingVideoFields) || errors.Is(err, service.ErrNoMediaProvided) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "An error occurred while uploading the video.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Video \"" + video.Title + "\" uploaded successfully!",
		"video":   video,
	})
}
