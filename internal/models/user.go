package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCreator  Role = "creator"
	RoleConsumer Role = "consumer"
)

// ValidRole reports whether r is one of the two roles an account can register as.
func ValidRole(r Role) bool {
	return r == RoleCreator || r == RoleConsumer
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
