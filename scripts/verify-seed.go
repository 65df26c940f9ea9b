package main

import (
	"fmt"
	"log"

	"github.com/hearthside/backend/internal/config"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🔍 Verifying seed data...")
	fmt.Println()

	// Count records
	var userCount, postCount, shareCount, likeCount int64
	database.DB.Model(&models.User{}).Count(&userCount)
	database.DB.Model(&models.Post{}).Count(&postCount)
	database.DB.Model(&models.Post{}).Where("is_shared = ?", true).Count(&shareCount)
	database.DB.Model(&models.PostLike{}).Count(&likeCount)

	fmt.Printf("Users:  %d\n", userCount)
	fmt.Printf("Posts:  %d (%d shares)\n", postCount, shareCount)
	fmt.Printf("Likes:  %d\n", likeCount)
	fmt.Println()

	// Spot-check a few posts with their like sets
	var posts []models.Post
	database.DB.Preload("User").Preload("Likes").Order("created_at DESC").Limit(5).Find(&posts)

	for _, post := range posts {
		fmt.Printf("  %s — %q by %s (%d likes)\n",
			post.ID[:8], post.Title, post.User.DisplayName(), len(post.Likes))
	}

	if userCount == 0 || postCount == 0 {
		fmt.Println()
		fmt.Println("⚠️  Database looks empty - run: go run cmd/seed/main.go dev")
	}
}
