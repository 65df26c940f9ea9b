package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/hearthside/backend/internal/apierrors"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"github.com/hearthside/backend/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service handles account operations: registration, login, profile updates
// and the suspension state machine.
type Service struct {
	tokens *token.Service
}

// NewService creates a new account service
func NewService(tokens *token.Service) *Service {
	return &Service{tokens: tokens}
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile fields. Empty fields are
// left untouched on the stored record; updates merge, they never null out.
type UpdateProfileRequest struct {
	PhoneNumber     string `json:"phone_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PreferredName   string `json:"preferred_name"`
	Gender          string `json:"gender"`
	PreferredGender string `json:"preferred_gender"`
	DateOfBirth     string `json:"date_of_birth"`
	HomeLocation    string `json:"home_location"`
}

// Register creates a new user with email/password and issues a session token
func (s *Service) Register(req RegisterRequest) (*AuthResponse, error) {
	// Check if user exists by email (case-insensitive)
	var existingUser models.User
	err := database.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&existingUser).Error
	if err == nil {
		return nil, apierrors.Conflict("user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueFor(&user)
}

// Login authenticates with email/password. Unknown email and wrong password
// produce the same error so callers cannot enumerate accounts; suspension is
// checked only after the password verifies.
func (s *Service) Login(req LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := database.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.BadRequest("invalid credentials")
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierrors.BadRequest("invalid credentials")
	}

	if user.IsSuspended {
		return nil, apierrors.Forbidden("account is suspended")
	}

	return s.issueFor(&user)
}

// UpdateProfile overwrites only the supplied non-empty fields
func (s *Service) UpdateProfile(user *models.User, req UpdateProfileRequest) (*models.User, error) {
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PreferredName != "" {
		user.PreferredName = req.PreferredName
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.PreferredGender != "" {
		user.PreferredGender = req.PreferredGender
	}
	if req.DateOfBirth != "" {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, apierrors.ValidationError("date_of_birth", "must be YYYY-MM-DD or RFC 3339")
		}
		user.DateOfBirth = &dob
	}
	if req.HomeLocation != "" {
		user.HomeLocation = req.HomeLocation
	}

	if err := database.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the caller's user record for good, freeing the email
// for future registration. Their posts are left in place.
func (s *Service) DeleteAccount(user *models.User) error {
	if err := database.DB.Unscoped().Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Suspend disables the caller's account. Suspending an already-suspended
// account is rejected and leaves state unchanged.
func (s *Service) Suspend(user *models.User) error {
	if user.IsSuspended {
		return apierrors.Conflict("account is already suspended")
	}

	user.IsSuspended = true
	if err := database.DB.Save(user).Error; err != nil {
		return fmt.Errorf("failed to suspend user: %w", err)
	}
	return nil
}

// Reactivate re-enables the caller's account
func (s *Service) Reactivate(user *models.User) (*models.User, error) {
	if !user.IsSuspended {
		return nil, apierrors.Conflict("account is not suspended")
	}

	user.IsSuspended = false
	if err := database.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to reactivate user: %w", err)
	}
	return user, nil
}

// AdminReactivate re-enables an arbitrary account by identifier. Route-level
// admin checks gate who may call this.
func (s *Service) AdminReactivate(targetUserID string) (*models.User, error) {
	var user models.User
	err := database.DB.First(&user, "id = ?", targetUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("user")
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsSuspended {
		return nil, apierrors.Conflict("account is not suspended")
	}

	user.IsSuspended = false
	if err := database.DB.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to reactivate user: %w", err)
	}
	return &user, nil
}

// FindUserByID loads a user by primary key
func (s *Service) FindUserByID(id string) (*models.User, error) {
	var user models.User
	err := database.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("user")
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// issueFor creates a session token and auth response for a user
func (s *Service) issueFor(user *models.User) (*AuthResponse, error) {
	tokenString, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     tokenString,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
