package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hearthside/backend/internal/config"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/logger"
	"github.com/hearthside/backend/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Parse command
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		seedDev()
	case "test":
		seedTest()
	case "clean":
		cleanSeed()
	default:
		fmt.Println("Usage: seed [dev|test|clean]")
		fmt.Println("  dev   - Seed development database with realistic data")
		fmt.Println("  test  - Seed test database with minimal data")
		fmt.Println("  clean - Remove all seed data (use with caution)")
		os.Exit(1)
	}
}

func connect() *seed.Seeder {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}

	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Database connected")
	return seed.NewSeeder(database.DB)
}

func seedDev() {
	log.Println("🌱 Seeding development database...")

	seeder := connect()
	defer database.Close()

	if err := seeder.SeedDev(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✅ Development database seeded successfully!")
}

func seedTest() {
	log.Println("🧪 Seeding test database...")

	seeder := connect()
	defer database.Close()

	if err := seeder.SeedTest(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✅ Test database seeded successfully!")
}

func cleanSeed() {
	log.Println("🧹 Cleaning seed data...")

	seeder := connect()
	defer database.Close()

	if err := seeder.Clean(); err != nil {
		log.Fatalf("❌ Clean failed: %v", err)
	}

	log.Println("✅ Seed data cleaned successfully!")
}
