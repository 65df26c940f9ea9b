// Package token issues and verifies the signed bearer tokens used for
// sessions. Tokens are stateless: nothing is persisted, a token is valid iff
// its signature checks out and it has not expired.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Service signs and verifies session tokens
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. ttl is how long issued tokens stay
// valid; zero falls back to one hour.
func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token embedding the user's identifier, expiring
// TTL from now.
func (s *Service) Issue(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// user identifier. Returns ErrTokenExpired past the deadline and
// ErrInvalidToken for anything else; callers present both to clients as the
// same generic authentication failure.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
