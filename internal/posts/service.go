package posts

import (
	"errors"
	"fmt"
	"time"

	"github.com/hearthside/backend/internal/apierrors"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"gorm.io/gorm"
)

// Service handles post operations: create/list/update/delete plus
// likes and shares.
type Service struct{}

// NewService creates a new post service
func NewService() *Service {
	return &Service{}
}

// CreateRequest carries the fields for a new post. PictureURL is filled in
// by the handler after the upload, not by the client.
type CreateRequest struct {
	Title      string
	Content    string
	PictureURL string
}

// UpdateRequest carries optional post fields; empty fields leave the stored
// value unchanged.
type UpdateRequest struct {
	Title      string
	Content    string
	PictureURL string
}

// Response is the read-side shape of a post: the stored record plus the
// author's display name and the like set, composed at read time.
type Response struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	AuthorName     string    `json:"author_name"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	PictureURL     string    `json:"picture_url,omitempty"`
	IsShared       bool      `json:"is_shared"`
	OriginalPostID *string   `json:"original_post_id,omitempty"`
	Likes          []string  `json:"likes"`
	LikeCount      int       `json:"like_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Create persists a post owned by the given user
func (s *Service) Create(user *models.User, req CreateRequest) (*Response, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apierrors.BadRequest("title and content are required")
	}

	post := models.Post{
		UserID:     user.ID,
		Title:      req.Title,
		Content:    req.Content,
		PictureURL: req.PictureURL,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post.User = *user
	return toResponse(&post), nil
}

// List returns all posts, newest first, annotated with author names
func (s *Service) List() ([]Response, error) {
	var posts []models.Post
	err := database.DB.
		Preload("User").
		Preload("Likes").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	responses := make([]Response, len(posts))
	for i := range posts {
		responses[i] = *toResponse(&posts[i])
	}
	return responses, nil
}

// Update overwrites only the supplied non-empty fields. Only the owner may
// update a post.
func (s *Service) Update(user *models.User, postID string, req UpdateRequest) (*Response, error) {
	post, err := s.load(postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != user.ID {
		return nil, apierrors.Forbidden("not the post owner")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.PictureURL != "" {
		post.PictureURL = req.PictureURL
	}

	if err := database.DB.Save(post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return toResponse(post), nil
}

// Delete removes a post and its likes. Only the owner may delete a post.
func (s *Service) Delete(user *models.User, postID string) error {
	post, err := s.load(postID)
	if err != nil {
		return err
	}

	if post.UserID != user.ID {
		return apierrors.Forbidden("not the post owner")
	}

	// The like rows and the post go in one transaction: either both are
	// removed or neither is
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete post likes: %w", err)
		}
		if err := tx.Delete(post).Error; err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	return err
}

// Like adds the user to a post's like set; at most one like per user
func (s *Service) Like(user *models.User, postID string) (*Response, error) {
	post, err := s.load(postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(user.ID) {
		return nil, apierrors.Conflict("post already liked")
	}

	like := models.PostLike{PostID: post.ID, UserID: user.ID}
	if err := database.DB.Create(&like).Error; err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	post.Likes = append(post.Likes, like)
	return toResponse(post), nil
}

// Unlike removes the user from a post's like set
func (s *Service) Unlike(user *models.User, postID string) (*Response, error) {
	post, err := s.load(postID)
	if err != nil {
		return nil, err
	}

	if !post.LikedBy(user.ID) {
		return nil, apierrors.Conflict("post not liked")
	}

	err = database.DB.
		Where("post_id = ? AND user_id = ?", post.ID, user.ID).
		Delete(&models.PostLike{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to unlike post: %w", err)
	}

	remaining := post.Likes[:0]
	for _, like := range post.Likes {
		if like.UserID != user.ID {
			remaining = append(remaining, like)
		}
	}
	post.Likes = remaining
	return toResponse(post), nil
}

// Share creates a new post owned by the caller that copies the original's
// title, content and picture and records where it came from. The share has
// an empty like set and lives independently of the original afterwards.
func (s *Service) Share(user *models.User, postID string) (*Response, error) {
	original, err := s.load(postID)
	if err != nil {
		return nil, err
	}

	shared := models.Post{
		UserID:         user.ID,
		Title:          original.Title,
		Content:        original.Content,
		PictureURL:     original.PictureURL,
		IsShared:       true,
		OriginalPostID: &original.ID,
	}

	if err := database.DB.Create(&shared).Error; err != nil {
		return nil, fmt.Errorf("failed to share post: %w", err)
	}

	shared.User = *user
	return toResponse(&shared), nil
}

// load fetches a post with its author and like set
func (s *Service) load(postID string) (*models.Post, error) {
	var post models.Post
	err := database.DB.
		Preload("User").
		Preload("Likes").
		First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("post")
	} else if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

func toResponse(post *models.Post) *Response {
	return &Response{
		ID:             post.ID,
		UserID:         post.UserID,
		AuthorName:     post.User.DisplayName(),
		Title:          post.Title,
		Content:        post.Content,
		PictureURL:     post.PictureURL,
		IsShared:       post.IsShared,
		OriginalPostID: post.OriginalPostID,
		Likes:          post.LikeUserIDs(),
		LikeCount:      len(post.Likes),
		CreatedAt:      post.CreatedAt,
	}
}
