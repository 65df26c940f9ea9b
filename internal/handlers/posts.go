package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/metrics"
	"github.com/hearthside/backend/internal/posts"
	"github.com/hearthside/backend/internal/util"
)

// postBody is the JSON shape for create/update when no picture accompanies
// the request. Multipart requests carry the same fields as form values.
type postBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// postRef identifies an existing post for like/unlike/share
type postRef struct {
	PostID string `json:"post_id" binding:"required"`
}

// CreatePost persists a post owned by the caller, with an optional picture
// upload
// POST /api/v1/posts/create
func (h *Handlers) CreatePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	title, content, pictureURL, ok := h.readPostFields(c)
	if !ok {
		return
	}

	resp, err := h.posts.Create(user, posts.CreateRequest{
		Title:      title,
		Content:    content,
		PictureURL: pictureURL,
	})
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().PostsCreatedTotal.WithLabelValues("original").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "post created",
		"post":    resp,
	})
}

// ListPosts returns all posts annotated with author names
// GET /api/v1/posts
func (h *Handlers) ListPosts(c *gin.Context) {
	list, err := h.posts.List()
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": list})
}

// UpdatePost overwrites the supplied fields on a post the caller owns
// PUT /api/v1/posts/update/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if postID == "" {
		util.RespondBadRequest(c, "post ID is required")
		return
	}

	title, content, pictureURL, ok := h.readPostFields(c)
	if !ok {
		return
	}

	resp, err := h.posts.Update(user, postID, posts.UpdateRequest{
		Title:      title,
		Content:    content,
		PictureURL: pictureURL,
	})
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "post updated",
		"post":    resp,
	})
}

// DeletePost removes a post the caller owns
// DELETE /api/v1/posts/delete/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if postID == "" {
		util.RespondBadRequest(c, "post ID is required")
		return
	}

	if err := h.posts.Delete(user, postID); err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// LikePost adds the caller to a post's like set
// POST /api/v1/posts/like
func (h *Handlers) LikePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req postRef
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "post_id is required")
		return
	}

	resp, err := h.posts.Like(user, req.PostID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().LikesTotal.WithLabelValues("like").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "post liked",
		"post":    resp,
	})
}

// UnlikePost removes the caller from a post's like set
// POST /api/v1/posts/unlike
func (h *Handlers) UnlikePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req postRef
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "post_id is required")
		return
	}

	resp, err := h.posts.Unlike(user, req.PostID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().LikesTotal.WithLabelValues("unlike").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "post unliked",
		"post":    resp,
	})
}

// SharePost creates an independent copy of a post on the caller's feed,
// keeping a reference back to the original
// POST /api/v1/posts/share
func (h *Handlers) SharePost(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req postRef
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "post_id is required")
		return
	}

	resp, err := h.posts.Share(user, req.PostID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().PostsCreatedTotal.WithLabelValues("share").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "post shared",
		"post":    resp,
	})
}

// readPostFields pulls title/content from either a JSON body or a multipart
// form, uploading the picture when one is attached. Returns ok=false after
// responding to the client on failure.
func (h *Handlers) readPostFields(c *gin.Context) (title, content, pictureURL string, ok bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		title = c.PostForm("title")
		content = c.PostForm("content")

		data, filename, err := readPictureUpload(c)
		if err != nil {
			util.RespondBadRequest(c, err.Error())
			return "", "", "", false
		}
		if data != nil {
			user, found := util.GetUserFromContext(c)
			if !found {
				return "", "", "", false
			}
			result, err := h.uploader.UploadPicture(c.Request.Context(), data, user.ID, filename)
			if err != nil {
				util.RespondServiceError(c, err)
				return "", "", "", false
			}
			pictureURL = result.URL
		}
		return title, content, pictureURL, true
	}

	var body postBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return "", "", "", false
	}
	return body.Title, body.Content, "", true
}
