package handlers

import (
	"net/http"

	"github.com/hearthside/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestRegisterEndpoint() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/auth/register", map[string]string{
		"email":    "new@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.NotEmpty(t, response["token"])
	assert.NotEmpty(t, response["expires_at"])

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])

	// The hash never leaks into responses
	_, exposed := user["password_hash"]
	assert.False(t, exposed)
}

func (suite *HandlersTestSuite) TestRegisterValidation() {
	t := suite.T()

	// Missing password
	w := suite.request("POST", "/api/v1/auth/register", map[string]string{
		"email": "new@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed email
	w = suite.request("POST", "/api/v1/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password shorter than eight characters
	w = suite.request("POST", "/api/v1/auth/register", map[string]string{
		"email":    "short@example.com",
		"password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRegisterDuplicateEndpoint() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)

	// Conflicts surface as 400, same as other client errors
	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "CONFLICT", response["code"])
}

func (suite *HandlersTestSuite) TestLoginEndpoint() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.NotEmpty(t, response["token"])
}

func (suite *HandlersTestSuite) TestLoginFailures() {
	t := suite.T()

	// Wrong password and unknown email produce identical bodies
	wrongPass := suite.request("POST", "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, nil)
	unknown := suite.request("POST", "/api/v1/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func (suite *HandlersTestSuite) TestLoginSuspended() {
	t := suite.T()

	require.NoError(t, suite.db.Model(suite.alice).Update("is_suspended", true).Error)

	w := suite.request("POST", "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestMeEndpoint() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/auth/me", nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	response := suite.decode(w)
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])

	// Unauthenticated
	w = suite.request("GET", "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateProfileEndpoint() {
	t := suite.T()

	w := suite.request("PUT", "/api/v1/auth/update", map[string]string{
		"first_name":    "Alice",
		"last_name":     "Smith",
		"date_of_birth": "1992-03-14",
	}, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, suite.db.First(&stored, "id = ?", suite.alice.ID).Error)
	assert.Equal(t, "Alice", stored.FirstName)
	assert.Equal(t, "Smith", stored.LastName)
	require.NotNil(t, stored.DateOfBirth)

	// A bad date is a field-level validation error
	w = suite.request("PUT", "/api/v1/auth/update", map[string]string{
		"date_of_birth": "14/03/1992",
	}, suite.alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "date_of_birth", response["field"])
}

func (suite *HandlersTestSuite) TestDeleteAccountEndpoint() {
	t := suite.T()

	w := suite.request("DELETE", "/api/v1/auth/delete", nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Where("id = ?", suite.alice.ID).Count(&count)
	assert.Zero(t, count)
}

func (suite *HandlersTestSuite) TestSuspendAndReactivateEndpoints() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/auth/suspend", nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, suite.db.First(&stored, "id = ?", suite.alice.ID).Error)
	assert.True(t, stored.IsSuspended)

	// Second suspend is a conflict
	w = suite.request("POST", "/api/v1/auth/suspend", nil, suite.alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/api/v1/auth/reactivate", nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, suite.db.First(&stored, "id = ?", suite.alice.ID).Error)
	assert.False(t, stored.IsSuspended)
}

func (suite *HandlersTestSuite) TestAdminReactivateEndpoint() {
	t := suite.T()

	require.NoError(t, suite.db.Model(suite.bob).Update("is_suspended", true).Error)

	// Non-admin caller is rejected before the handler runs
	w := suite.request("POST", "/api/v1/auth/admin-reactivate", map[string]string{
		"user_id": suite.bob.ID,
	}, suite.alice)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.request("POST", "/api/v1/auth/admin-reactivate", map[string]string{
		"user_id": suite.bob.ID,
	}, suite.admin)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, suite.db.First(&stored, "id = ?", suite.bob.ID).Error)
	assert.False(t, stored.IsSuspended)

	// Unknown target
	w = suite.request("POST", "/api/v1/auth/admin-reactivate", map[string]string{
		"user_id": "00000000-0000-0000-0000-000000000000",
	}, suite.admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
