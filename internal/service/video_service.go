package service

import (
	"errors"

	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/repository"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrMissingVideoFields = errors.New("title, publisher and age rating are required")
	ErrNoMediaProvided    = errors.New("no media provided")
)

// VideoFields are the submitted attributes of a new video. URL carries either
// the stored upload path or an external link, resolved before Create is called.
type VideoFields struct {
	Title     string
	Publisher string
	Producer  string
	Genre     string
	AgeRating string
	URL       string
}

// VideoEngagement is one catalog entry with its engagement rolled up, as shown
// on the shorts view.
type VideoEngagement struct {
	Video        models.Video  `json:"video"`
	Comments     []CommentView `json:"comments"`
	CommentCount int64         `json:"comment_count"`
	LikeCount    int64         `json:"like_count"`
}

type VideoService struct {
	videoRepo      *repository.VideoRepository
	engagementRepo *repository.EngagementRepository
}

func NewVideoService(videoRepo *repository.VideoRepository, engagementRepo *repository.EngagementRepository) *VideoService {
	return &VideoService{
		videoRepo:      videoRepo,
		engagementRepo: engagementRepo,
	}
}

// ListRecent returns the newest videos, capped at limit.
func (s *VideoService) ListRecent(limit int) ([]models.Video, error) {
	videos, err := s.videoRepo.GetRecentVideos(limit)
	if err != nil {
		logger.Log.Error("Failed to list recent videos",
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, err
	}
	return videos, nil
}

// ListByUploader returns all of one creator's videos for dashboard and
// profile views.
func (s *VideoService) ListByUploader(uploaderID uuid.UUID) ([]models.Video, error) {
	videos, err := s.videoRepo.GetVideosByUploader(uploaderID)
	if err != nil {
		logger.Log.Error("Failed to list videos by uploader",
			zap.String("uploader_id", uploaderID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return videos, nil
}

func (s *VideoService) GetByID(id uint64) (*models.Video, error) {
	video, err := s.videoRepo.GetVideoByID(id)
	if err != nil {
		logger.Log.Error("Failed to get video",
			zap.Uint64("video_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// Create validates the required fields and persists a video owned by the
// uploading creator.
func (s *VideoService) Create(fields VideoFields, uploaderID uuid.UUID) (*models.Video, error) {
	if fields.Title == "" || fields.Publisher == "" || fields.AgeRating == "" {
		return nil, ErrMissingVideoFields
	}
	if fields.URL == "" {
		return nil, ErrNoMediaProvided
	}

	video := &models.Video{
		Title:      fields.Title,
		Publisher:  fields.Publisher,
		Producer:   fields.Producer,
		Genre:      fields.Genre,
		AgeRating:  fields.AgeRating,
		URL:        fields.URL,
		UploadedBy: uploaderID,
	}

	if err := s.videoRepo.CreateVideo(video); err != nil {
		logger.Log.Error("Failed to create video",
			zap.String("title", fields.Title),
			zap.String("uploader_id", uploaderID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Video created",
		zap.Uint64("video_id", video.ID),
		zap.String("title", video.Title),
		zap.String("uploader_id", uploaderID.String()),
	)

	return video, nil
}

// ListWithEngagement returns the whole catalog newest-first, each video with
// its comments and like/comment counts (the shorts view).
func (s *VideoService) ListWithEngagement() ([]VideoEngagement, error) {
	videos, err := s.videoRepo.GetAllVideos()
	if err != nil {
		logger.Log.Error("Failed to list videos for engagement view",
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]VideoEngagement, 0, len(videos))
	for _, video := range videos {
		comments, err := s.engagementRepo.GetCommentsForVideo(video.ID)
		if err != nil {
			return nil, err
		}
		likeCount, err := s.engagementRepo.CountLikesForVideo(video.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, VideoEngagement{
			Video:        video,
			Comments:     commentViews(comments),
			CommentCount: int64(len(comments)),
			LikeCount:    likeCount,
		})
	}

	return result, nil
}
