package service

import (
	"errors"
	"time"

	"github.com/emirpasha/vidshare/internal/broker"
	"github.com/emirpasha/vidshare/internal/journal"
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/repository"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyComment  = errors.New("comment text is required")
)

// CommentView is a comment joined with the commenting username, as returned
// to clients.
type CommentView struct {
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func commentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			Username:  c.User.Username,
			Comment:   c.Body,
			Rating:    c.Rating,
			CreatedAt: c.CreatedAt,
		})
	}
	return views
}

type EngagementService struct {
	engagementRepo *repository.EngagementRepository
	videoRepo      *repository.VideoRepository
	broker         broker.EventBroker
	journal        *journal.Journal
}

func NewEngagementService(
	engagementRepo *repository.EngagementRepository,
	videoRepo *repository.VideoRepository,
	eventBroker broker.EventBroker,
	eventJournal *journal.Journal,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		videoRepo:      videoRepo,
		broker:         eventBroker,
		journal:        eventJournal,
	}
}

// AddComment validates and persists a comment. The username echoed back comes
// from the caller's session, not a re-query.
func (s *EngagementService) AddComment(videoID uint64, userID uuid.UUID, username, text string, rating int) (*CommentView, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}
	if rating < 1 || rating > 5 {
		logger.Log.Warn("Comment rejected: rating out of range",
			zap.Uint64("video_id", videoID),
			zap.Int("rating", rating),
		)
		return nil, ErrInvalidRating
	}

	video, err := s.videoRepo.GetVideoByID(videoID)
	if err != nil {
		logger.Log.Error("Failed to verify video for comment",
			zap.Uint64("video_id", videoID),
			zap.Error(err),
		)
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	eventID := uuid.New().String()
	now := time.Now()

	entry := journal.Entry{
		EventID:   eventID,
		Kind:      broker.EventKindComment,
		VideoID:   videoID,
		UserID:    userID.String(),
		Timestamp: now,
	}
	if err := s.journal.Write(entry); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		VideoID:   videoID,
		UserID:    userID,
		Body:      text,
		Rating:    rating,
		CreatedAt: now,
	}
	if err := s.engagementRepo.CreateComment(comment); err != nil {
		logger.Log.Error("Failed to create comment",
			zap.Uint64("video_id", videoID),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.journal.Cleanup([]string{eventID}); err != nil {
		logger.Log.Warn("Failed to clean up journal entry",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}

	event := broker.Event{
		EventID:   eventID,
		Kind:      broker.EventKindComment,
		VideoID:   videoID,
		UserID:    userID.String(),
		Username:  username,
		Comment:   text,
		Rating:    rating,
		Timestamp: now.Format(time.RFC3339),
	}
	if err := s.broker.Publish(event); err != nil {
		// The comment is already persisted; losing the live feed event is
		// tolerable.
		logger.Log.Warn("Failed to publish comment event",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}

	logger.Log.Info("Comment added",
		zap.Uint64("video_id", videoID),
		zap.String("user_id", userID.String()),
		zap.Int("rating", rating),
	)

	return &CommentView{
		Username:  username,
		Comment:   text,
		Rating:    rating,
		CreatedAt: now,
	}, nil
}

// ToggleLike sets or unsets a like and returns the like count recomputed from
// the store. Liking twice and unliking what was never liked are both no-ops.
func (s *EngagementService) ToggleLike(videoID uint64, userID uuid.UUID, username string, liked bool) (int64, error) {
	video, err := s.videoRepo.GetVideoByID(videoID)
	if err != nil {
		logger.Log.Error("Failed to verify video for like",
			zap.Uint64("video_id", videoID),
			zap.Error(err),
		)
		return 0, err
	}
	if video == nil {
		return 0, ErrVideoNotFound
	}

	eventID := uuid.New().String()
	now := time.Now()

	entry := journal.Entry{
		EventID:   eventID,
		Kind:      broker.EventKindLike,
		VideoID:   videoID,
		UserID:    userID.String(),
		Timestamp: now,
	}
	if err := s.journal.Write(entry); err != nil {
		return 0, err
	}

	count, err := s.engagementRepo.ToggleLike(videoID, userID, liked)
	if err != nil {
		logger.Log.Error("Failed to toggle like",
			zap.Uint64("video_id", videoID),
			zap.String("user_id", userID.String()),
			zap.Bool("liked", liked),
			zap.Error(err),
		)
		return 0, err
	}

	if err := s.journal.Cleanup([]string{eventID}); err != nil {
		logger.Log.Warn("Failed to clean up journal entry",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}

	event := broker.Event{
		EventID:   eventID,
		Kind:      broker.EventKindLike,
		VideoID:   videoID,
		UserID:    userID.String(),
		Username:  username,
		Liked:     liked,
		LikeCount: count,
		Timestamp: now.Format(time.RFC3339),
	}
	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish like event",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}

	logger.Log.Info("Like toggled",
		zap.Uint64("video_id", videoID),
		zap.String("user_id", userID.String()),
		zap.Bool("liked", liked),
		zap.Int64("like_count", count),
	)

	return count, nil
}

// ListCommentsForVideo returns a video's comments newest-first, joined with
// the commenting usernames.
func (s *EngagementService) ListCommentsForVideo(videoID uint64) ([]CommentView, error) {
	comments, err := s.engagementRepo.GetCommentsForVideo(videoID)
	if err != nil {
		logger.Log.Error("Failed to list comments",
			zap.Uint64("video_id", videoID),
			zap.Error(err),
		)
		return nil, err
	}
	return commentViews(comments), nil
}
