package repository

import (
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsForVideo returns a video's comments newest-first with the
// commenting user preloaded for the username join.
func (r *EngagementRepository) GetCommentsForVideo(videoID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("User").
		Where("video_id = ?", videoID).
		Order("id DESC").
		Find(&comments).Error

	return comments, err
}

func (r *EngagementRepository) CountCommentsForVideo(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *EngagementRepository) CountLikesForVideo(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// ToggleLike sets or unsets one user's like on one video and returns the like
// count afterwards. Toggle and recount run in a single transaction so the
// returned count always reflects the toggle it answers for. The composite
// primary key on (video_id, user_id) makes a repeated like a conflict, which
// is swallowed (DoNothing); unliking a video that was never liked deletes
// nothing. Both directions are idempotent.
func (r *EngagementRepository) ToggleLike(videoID uint64, userID uuid.UUID, liked bool) (int64, error) {
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if liked {
			like := models.Like{VideoID: videoID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		} else {
			if err := tx.
				Where("video_id = ? AND user_id = ?", videoID, userID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Like{}).
			Where("video_id = ?", videoID).
			Count(&count).Error
	})

	return count, err
}
