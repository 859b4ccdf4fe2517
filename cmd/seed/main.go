package main

import (
	"log"
	"os"

	"github.com/emirpasha/vidshare/internal/config"
	"github.com/emirpasha/vidshare/internal/database"
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/google/uuid"
)

// Seeds a demo creator and a couple of catalog entries so a fresh install has
// something to browse.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	defer database.Close()
	database.Migrate()

	var videoCount int64
	if err := database.DB.Model(&models.Video{}).Count(&videoCount).Error; err != nil {
		log.Fatal("Failed to inspect catalog:", err)
	}
	if videoCount > 0 {
		log.Printf("Catalog already has %d videos, nothing to seed", videoCount)
		return
	}

	demoPassword := os.Getenv("DEMO_CREATOR_PASSWORD")
	if demoPassword == "" {
		demoPassword = "demo123"
	}

	creator := models.User{}
	result := database.DB.Where("username = ?", "demo_creator").First(&creator)
	if result.Error != nil {
		passwordHash, err := utils.HashPassword(demoPassword)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		creator = models.User{
			ID:           uuid.New(),
			Username:     "demo_creator",
			PasswordHash: passwordHash,
			Role:         models.RoleCreator,
		}
		if err := database.DB.Create(&creator).Error; err != nil {
			log.Fatal("Failed to create demo creator:", err)
		}
		log.Println("Demo creator created:", creator.Username)
	}

	demoVideos := []models.Video{
		{
			Title:      "Wonders of the Deep Ocean",
			Publisher:  "Blue Horizon Media",
			Producer:   "Marina Clarke",
			Genre:      "Nature",
			AgeRating:  "G",
			URL:        "https://www.pexels.com/download/video/5896379/",
			UploadedBy: creator.ID,
		},
		{
			Title:      "Cooking Made Simple: Quick Pasta",
			Publisher:  "KitchenCraft",
			Producer:   "Liam Bennett",
			Genre:      "Cooking",
			AgeRating:  "G",
			URL:        "https://www.pexels.com/download/video/5896379/",
			UploadedBy: creator.ID,
		},
	}

	for _, video := range demoVideos {
		if err := database.DB.Create(&video).Error; err != nil {
			log.Fatal("Failed to seed demo video:", err)
		}
		log.Println("Seeded demo video:", video.Title)
	}

	log.Println("Demo videos added successfully")
}
