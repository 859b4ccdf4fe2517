package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is keyed on (video_id, user_id): a user can like a given video at most
// once, and the primary key doubles as the uniqueness guard under concurrent
// toggles.
type Like struct {
	VideoID   uint64    `gorm:"primaryKey;autoIncrement:false" json:"video_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
