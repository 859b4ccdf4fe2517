package testutil

import (
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser creates a test user with a hashed password.
func CreateTestUser(username, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}, nil
}

// DefaultCreator returns a default creator-role test user.
func DefaultCreator() (*models.User, error) {
	return CreateTestUser("alice", "CreatorPass123", models.RoleCreator)
}

// DefaultConsumer returns a default consumer-role test user.
func DefaultConsumer() (*models.User, error) {
	return CreateTestUser("bob", "ConsumerPass123", models.RoleConsumer)
}

// CreateTestVideo creates a test video owned by the given creator.
func CreateTestVideo(uploaderID uuid.UUID, title string) *models.Video {
	return &models.Video{
		Title:      title,
		Publisher:  "Test Publisher",
		Producer:   "Test Producer",
		Genre:      "Test",
		AgeRating:  "G",
		URL:        "http://example.com/video.mp4",
		UploadedBy: uploaderID,
	}
}
