package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/hearthside/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) createPostFor(user *models.User, title string) string {
	w := suite.request("POST", "/api/v1/posts/create", map[string]string{
		"title":   title,
		"content": "some content",
	}, user)
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	post := response["post"].(map[string]interface{})
	return post["id"].(string)
}

func (suite *HandlersTestSuite) TestCreatePostEndpoint() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/posts/create", map[string]string{
		"title":   "Hello",
		"content": "First post",
	}, suite.alice)
	assert.Equal(t, http.StatusCreated, w.Code)

	response := suite.decode(w)
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "Hello", post["title"])
	assert.Equal(t, suite.alice.ID, post["user_id"])

	// Missing content
	w = suite.request("POST", "/api/v1/posts/create", map[string]string{
		"title": "Only a title",
	}, suite.alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unauthenticated
	w = suite.request("POST", "/api/v1/posts/create", map[string]string{
		"title":   "Hello",
		"content": "body",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePostMultipart() {
	t := suite.T()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "With picture"))
	require.NoError(t, writer.WriteField("content", "look at this"))
	part, err := writer.CreateFormFile("picture", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/v1/posts/create", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", suite.alice.ID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	response := suite.decode(w)
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "With picture", post["title"])
	assert.NotEmpty(t, post["picture_url"])
}

func (suite *HandlersTestSuite) TestListPostsEndpoint() {
	t := suite.T()

	suite.createPostFor(suite.alice, "first")
	suite.createPostFor(suite.bob, "second")

	w := suite.request("GET", "/api/v1/posts", nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	response := suite.decode(w)
	list := response["posts"].([]interface{})
	assert.Len(t, list, 2)
}

func (suite *HandlersTestSuite) TestUpdatePostEndpoint() {
	t := suite.T()

	postID := suite.createPostFor(suite.alice, "original")

	w := suite.request("PUT", "/api/v1/posts/update/"+postID, map[string]string{
		"title": "edited",
	}, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	// Someone else's post
	w = suite.request("PUT", "/api/v1/posts/update/"+postID, map[string]string{
		"title": "hijacked",
	}, suite.bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown post
	w = suite.request("PUT", "/api/v1/posts/update/00000000-0000-0000-0000-000000000000", map[string]string{
		"title": "nothing",
	}, suite.alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestDeletePostEndpoint() {
	t := suite.T()

	postID := suite.createPostFor(suite.alice, "doomed")

	w := suite.request("DELETE", "/api/v1/posts/delete/"+postID, nil, suite.bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.request("DELETE", "/api/v1/posts/delete/"+postID, nil, suite.alice)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func (suite *HandlersTestSuite) TestLikeUnlikeEndpoints() {
	t := suite.T()

	postID := suite.createPostFor(suite.alice, "likeable")

	w := suite.request("POST", "/api/v1/posts/like", map[string]string{"post_id": postID}, suite.bob)
	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	post := response["post"].(map[string]interface{})
	assert.EqualValues(t, 1, post["like_count"])

	// Double like
	w = suite.request("POST", "/api/v1/posts/like", map[string]string{"post_id": postID}, suite.bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/api/v1/posts/unlike", map[string]string{"post_id": postID}, suite.bob)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unlike without a like
	w = suite.request("POST", "/api/v1/posts/unlike", map[string]string{"post_id": postID}, suite.bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing post_id
	w = suite.request("POST", "/api/v1/posts/like", map[string]string{}, suite.bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestSharePostEndpoint() {
	t := suite.T()

	postID := suite.createPostFor(suite.alice, "shareable")

	w := suite.request("POST", "/api/v1/posts/share", map[string]string{"post_id": postID}, suite.bob)
	assert.Equal(t, http.StatusCreated, w.Code)

	response := suite.decode(w)
	post := response["post"].(map[string]interface{})
	assert.Equal(t, true, post["is_shared"])
	assert.Equal(t, postID, post["original_post_id"])
	assert.Equal(t, suite.bob.ID, post["user_id"])

	// Unknown post
	w = suite.request("POST", "/api/v1/posts/share", map[string]string{
		"post_id": "00000000-0000-0000-0000-000000000000",
	}, suite.bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
