package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/hearthside/backend/internal/logger"
	"github.com/hearthside/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating users...")
	users, err := s.seedUsers(50)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log("Creating posts...")
	posts, err := s.seedPosts(users, 200)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	log("Creating likes...")
	if err := s.seedLikes(users, posts, 800); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}

	log("Creating shares...")
	if err := s.seedShares(users, posts, 40); err != nil {
		return fmt.Errorf("failed to seed shares: %w", err)
	}

	return nil
}

// SeedTest seeds the test database with a small fixed set of accounts
func (s *Seeder) SeedTest() error {
	testUserSpecs := []struct {
		email     string
		firstName string
		lastName  string
	}{
		{"alice@example.com", "Alice", "Smith"},
		{"bob@example.com", "Bob", "Johnson"},
		{"charlie@example.com", "Charlie", "Brown"},
	}

	var users []models.User
	for _, spec := range testUserSpecs {
		var user models.User
		err := s.db.Where("LOWER(email) = LOWER(?)", spec.email).First(&user).Error
		if err == nil {
			users = append(users, user)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user = models.User{
			Email:        spec.email,
			PasswordHash: string(hashedPassword),
			FirstName:    spec.firstName,
			LastName:     spec.lastName,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.email, err)
		}
		users = append(users, user)
	}

	// One post each so the feed is never empty in e2e runs
	for _, user := range users {
		var count int64
		s.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&count)
		if count > 0 {
			continue
		}
		post := models.Post{
			UserID:  user.ID,
			Title:   fmt.Sprintf("Hello from %s", user.DisplayName()),
			Content: gofakeit.Sentence(12),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create test post: %w", err)
		}
	}

	return nil
}

// Clean removes all seeded data. Only seed-generated accounts are touched;
// anything with a non-example.com email survives.
func (s *Seeder) Clean() error {
	var users []models.User
	if err := s.db.Where("email LIKE ?", "%@example.com").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to find seed users: %w", err)
	}

	for _, user := range users {
		if err := s.db.Where("user_id = ?", user.ID).Delete(&models.PostLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		var posts []models.Post
		if err := s.db.Where("user_id = ?", user.ID).Find(&posts).Error; err != nil {
			return fmt.Errorf("failed to find posts: %w", err)
		}
		for _, post := range posts {
			if err := s.db.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
				return fmt.Errorf("failed to delete post likes: %w", err)
			}
		}
		if err := s.db.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}
		if err := s.db.Unscoped().Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}

	logger.Log.Info(fmt.Sprintf("Removed %d seed users and their content", len(users)))
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	// All seed accounts share one password so hashing happens once
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	genders := []string{"male", "female", "non-binary"}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		firstName := gofakeit.FirstName()
		lastName := gofakeit.LastName()
		email := fmt.Sprintf("%s.%s%d@example.com",
			strings.ToLower(firstName), strings.ToLower(lastName), i)

		dob := gofakeit.DateRange(
			time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		user := models.User{
			Email:           email,
			PasswordHash:    string(hashedPassword),
			PhoneNumber:     gofakeit.Phone(),
			FirstName:       firstName,
			LastName:        lastName,
			Gender:          genders[rand.Intn(len(genders))],
			PreferredGender: genders[rand.Intn(len(genders))],
			DateOfBirth:     &dob,
			HomeLocation:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		}
		if rand.Float32() < 0.3 {
			user.PreferredName = gofakeit.Username()
		}

		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", email, err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (s *Seeder) seedPosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]

		post := models.Post{
			UserID:  author.ID,
			Title:   gofakeit.Sentence(4),
			Content: gofakeit.Paragraph(1, 3, 12, " "),
		}
		if rand.Float32() < 0.2 {
			post.PictureURL = gofakeit.ImageURL(640, 480)
		}

		if err := s.db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (s *Seeder) seedLikes(users []models.User, posts []models.Post, count int) error {
	// The unique (post_id, user_id) index rejects duplicate picks; skip them
	for i := 0; i < count; i++ {
		user := users[rand.Intn(len(users))]
		post := posts[rand.Intn(len(posts))]

		like := models.PostLike{
			PostID: post.ID,
			UserID: user.ID,
		}
		if err := s.db.Create(&like).Error; err != nil {
			continue
		}
	}

	return nil
}

func (s *Seeder) seedShares(users []models.User, posts []models.Post, count int) error {
	for i := 0; i < count; i++ {
		sharer := users[rand.Intn(len(users))]
		original := posts[rand.Intn(len(posts))]

		share := models.Post{
			UserID:         sharer.ID,
			Title:          original.Title,
			Content:        original.Content,
			PictureURL:     original.PictureURL,
			IsShared:       true,
			OriginalPostID: &original.ID,
		}
		if err := s.db.Create(&share).Error; err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
	}

	return nil
}
