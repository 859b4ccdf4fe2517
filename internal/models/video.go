package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Publisher  string    `gorm:"type:varchar(100);not null" json:"publisher"`
	Producer   string    `gorm:"type:varchar(100)" json:"producer"`
	Genre      string    `gorm:"type:varchar(50)" json:"genre"`
	AgeRating  string    `gorm:"type:varchar(10);not null" json:"age_rating"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Uploader User `gorm:"foreignKey:UploadedBy;constraint:OnDelete:CASCADE" json:"-"`
}
