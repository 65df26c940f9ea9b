package models

import (
	"strings"
	"time"
)

// User represents a Hearthside member account
type User struct {
	ID    string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Never exposed; only the bcrypt hash is stored
	PasswordHash string `gorm:"not null" json:"-"`

	// Optional profile fields
	PhoneNumber     string     `json:"phone_number,omitempty"`
	FirstName       string     `json:"first_name,omitempty"`
	LastName        string     `json:"last_name,omitempty"`
	PreferredName   string     `json:"preferred_name,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	PreferredGender string     `json:"preferred_gender,omitempty"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	HomeLocation    string     `json:"home_location,omitempty"`

	// Account state
	IsSuspended bool `gorm:"default:false" json:"is_suspended"`
	IsAdmin     bool `gorm:"default:false" json:"is_admin"`

	// GORM fields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the name shown next to a user's posts: preferred name
// first, then first/last, then the local part of their email.
func (u *User) DisplayName() string {
	if u.PreferredName != "" {
		return u.PreferredName
	}
	if u.FirstName != "" || u.LastName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
