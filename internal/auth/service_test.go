package auth

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hearthside/backend/internal/apierrors"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"github.com/hearthside/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthServiceTestSuite contains account service tests
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
}

// SetupSuite initializes test database and account service
func (suite *AuthServiceTestSuite) SetupSuite() {
	host := getEnvOrDefault("POSTGRES_HOST", "localhost")
	port := getEnvOrDefault("POSTGRES_PORT", "5432")
	user := getEnvOrDefault("POSTGRES_USER", "postgres")
	password := getEnvOrDefault("POSTGRES_PASSWORD", "")
	dbname := getEnvOrDefault("POSTGRES_DB", "hearthside_test")

	testDSN := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", host, port, user, dbname)
	if password != "" {
		testDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
	}

	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		suite.T().Skipf("Skipping auth tests: database not available (%v)", err)
		return
	}

	database.DB = db

	err = db.AutoMigrate(&models.User{})
	require.NoError(suite.T(), err)

	suite.db = db
	suite.service = NewService(token.NewService([]byte("test_jwt_secret_key"), time.Hour))
}

// TearDownSuite cleans up after tests
func (suite *AuthServiceTestSuite) TearDownSuite() {
	if suite.db == nil {
		return
	}
	suite.db.Exec("DROP TABLE IF EXISTS users CASCADE")

	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

// SetupTest cleans database before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM users")
}

func (suite *AuthServiceTestSuite) register(email, password string) *AuthResponse {
	resp, err := suite.service.Register(RegisterRequest{Email: email, Password: password})
	require.NoError(suite.T(), err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegister() {
	t := suite.T()

	resp := suite.register("test@example.com", "password123")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	assert.False(t, resp.ExpiresAt.IsZero())

	// Password must never be stored in the clear
	assert.NotEqual(t, "password123", resp.User.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	t := suite.T()

	suite.register("dup@example.com", "password123")

	_, err := suite.service.Register(RegisterRequest{Email: "dup@example.com", Password: "password456"})
	require.Error(t, err)

	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrConflict, apiErr.Code)
	assert.Equal(t, 400, apiErr.Status)

	// Duplicate detection is case-insensitive
	_, err = suite.service.Register(RegisterRequest{Email: "DUP@Example.COM", Password: "password456"})
	assert.Error(t, err)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	t := suite.T()

	suite.register("login@example.com", "password123")

	resp, err := suite.service.Login(LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "login@example.com", resp.User.Email)

	// Email lookup is case-insensitive
	resp, err = suite.service.Login(LoginRequest{Email: "LOGIN@EXAMPLE.COM", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func (suite *AuthServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	t := suite.T()

	suite.register("known@example.com", "password123")

	// Wrong password for a known account
	_, wrongPassErr := suite.service.Login(LoginRequest{Email: "known@example.com", Password: "nope-nope"})
	require.Error(t, wrongPassErr)

	// Unknown account entirely
	_, unknownErr := suite.service.Login(LoginRequest{Email: "ghost@example.com", Password: "password123"})
	require.Error(t, unknownErr)

	// Both failures must carry the same message so callers can't probe for
	// registered emails
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())

	apiErr, ok := wrongPassErr.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrBadRequest, apiErr.Code)
}

func (suite *AuthServiceTestSuite) TestLoginSuspendedAccount() {
	t := suite.T()

	resp := suite.register("frozen@example.com", "password123")

	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)
	require.NoError(t, suite.service.Suspend(user))

	// Correct password on a suspended account is forbidden, not invalid
	_, err = suite.service.Login(LoginRequest{Email: "frozen@example.com", Password: "password123"})
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrForbidden, apiErr.Code)

	// Wrong password on a suspended account still reads as invalid
	// credentials, never leaking the suspension
	_, err = suite.service.Login(LoginRequest{Email: "frozen@example.com", Password: "wrong-password"})
	require.Error(t, err)
	apiErr, ok = err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrBadRequest, apiErr.Code)
}

func (suite *AuthServiceTestSuite) TestUpdateProfileMerges() {
	t := suite.T()

	resp := suite.register("profile@example.com", "password123")
	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)

	updated, err := suite.service.UpdateProfile(user, UpdateProfileRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		HomeLocation: "London, UK",
		DateOfBirth:  "1990-12-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	require.NotNil(t, updated.DateOfBirth)
	assert.Equal(t, 1990, updated.DateOfBirth.Year())

	// A second update with only one field leaves the rest untouched
	updated, err = suite.service.UpdateProfile(updated, UpdateProfileRequest{
		PreferredName: "ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", updated.PreferredName)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "London, UK", updated.HomeLocation)
	require.NotNil(t, updated.DateOfBirth)
}

func (suite *AuthServiceTestSuite) TestUpdateProfileRejectsBadDate() {
	t := suite.T()

	resp := suite.register("baddate@example.com", "password123")
	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)

	_, err = suite.service.UpdateProfile(user, UpdateProfileRequest{DateOfBirth: "10/12/1990"})
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrValidation, apiErr.Code)
	assert.Equal(t, "date_of_birth", apiErr.Field)
}

func (suite *AuthServiceTestSuite) TestSuspendReactivateGuards() {
	t := suite.T()

	resp := suite.register("state@example.com", "password123")
	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)

	// Reactivating an active account is rejected
	_, err = suite.service.Reactivate(user)
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrConflict, apiErr.Code)

	require.NoError(t, suite.service.Suspend(user))
	assert.True(t, user.IsSuspended)

	// Double suspend is rejected and leaves state unchanged
	err = suite.service.Suspend(user)
	require.Error(t, err)
	reloaded, err := suite.service.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsSuspended)

	updated, err := suite.service.Reactivate(reloaded)
	require.NoError(t, err)
	assert.False(t, updated.IsSuspended)
}

func (suite *AuthServiceTestSuite) TestAdminReactivate() {
	t := suite.T()

	resp := suite.register("target@example.com", "password123")
	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)
	require.NoError(t, suite.service.Suspend(user))

	updated, err := suite.service.AdminReactivate(user.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsSuspended)

	// Active target is a conflict
	_, err = suite.service.AdminReactivate(user.ID)
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrConflict, apiErr.Code)

	// Unknown target is not found
	_, err = suite.service.AdminReactivate("00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	apiErr, ok = err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.ErrNotFound, apiErr.Code)
}

func (suite *AuthServiceTestSuite) TestDeleteAccount() {
	t := suite.T()

	resp := suite.register("gone@example.com", "password123")
	user, err := suite.service.FindUserByID(resp.User.ID)
	require.NoError(t, err)

	require.NoError(t, suite.service.DeleteAccount(user))

	_, err = suite.service.FindUserByID(user.ID)
	require.Error(t, err)

	// The email is free to register again
	suite.register("gone@example.com", "password456")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
