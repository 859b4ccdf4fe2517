package repository

import (
	"errors"

	"github.com/emirpasha/vidshare/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) CreateVideo(video *models.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepository) GetVideoByID(id uint64) (*models.Video, error) {
	var video models.Video
	err := r.db.First(&video, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &video, nil
}

// GetRecentVideos returns the newest videos, capped at limit.
func (r *VideoRepository) GetRecentVideos(limit int) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.
		Order("id DESC").
		Limit(limit).
		Find(&videos).Error

	return videos, err
}

// GetVideosByUploader returns all of one creator's videos, newest-first.
func (r *VideoRepository) GetVideosByUploader(uploaderID uuid.UUID) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.
		Where("uploaded_by = ?", uploaderID).
		Order("id DESC").
		Find(&videos).Error

	return videos, err
}

// GetAllVideos returns the whole catalog, newest-first.
func (r *VideoRepository) GetAllVideos() ([]models.Video, error) {
	var videos []models.Video
	err := r.db.
		Order("id DESC").
		Find(&videos).Error

	return videos, err
}

func (r *VideoRepository) CountVideos() (int64, error) {
	var count int64
	err := r.db.Model(&models.Video{}).Count(&count).Error
	return count, err
}
