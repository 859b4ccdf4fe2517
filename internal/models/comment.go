package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   uint64    `gorm:"not null;index" json:"video_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Body      string    `gorm:"column:comment;type:text;not null" json:"comment"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5, validated before insert
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
