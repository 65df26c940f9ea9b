package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hearthside/backend/internal/config"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Parse command-line flags
	email := flag.String("email", "", "Email address of user to promote to admin")
	revoke := flag.Bool("revoke", false, "Revoke admin privileges instead of granting")
	flag.Parse()

	if *email == "" {
		fmt.Println("Usage: go run cmd/promote-admin/main.go -email=user@example.com")
		fmt.Println("       go run cmd/promote-admin/main.go -email=user@example.com -revoke")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.DB
	if db == nil {
		log.Fatal("Failed to get database connection")
	}

	// Find user by email
	var user models.User
	result := db.Where("LOWER(email) = LOWER(?)", *email).First(&user)

	if result.Error != nil {
		fmt.Printf("❌ User not found: %s\n", *email)
		return
	}

	if *revoke {
		// Revoke admin privileges
		if !user.IsAdmin {
			fmt.Printf("⚠️  User %s is not an admin\n", user.Email)
			return
		}

		user.IsAdmin = false
		if err := db.Save(&user).Error; err != nil {
			fmt.Printf("❌ Failed to revoke admin privileges: %v\n", err)
			return
		}

		fmt.Printf("✓ Admin privileges revoked for %s\n", user.Email)
	} else {
		// Grant admin privileges
		if user.IsAdmin {
			fmt.Printf("⚠️  User %s is already an admin\n", user.Email)
			return
		}

		user.IsAdmin = true
		if err := db.Save(&user).Error; err != nil {
			fmt.Printf("❌ Failed to grant admin privileges: %v\n", err)
			return
		}

		fmt.Printf("✓ Admin privileges granted to %s\n", user.Email)
		fmt.Printf("  User ID: %s\n", user.ID)
	}
}
