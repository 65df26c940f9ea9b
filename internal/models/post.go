package models

import (
	"time"
)

// Post represents a post on a user's feed. A share is itself a Post that
// carries OriginalPostID for provenance; it is otherwise independent of the
// post it was copied from.
type Post struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text;not null" json:"content"`
	PictureURL string `json:"picture_url,omitempty"`

	// Share lineage
	IsShared       bool    `gorm:"default:false" json:"is_shared"`
	OriginalPostID *string `gorm:"type:uuid;index" json:"original_post_id,omitempty"`

	// Like rows are removed alongside the post inside the delete
	// transaction; the schema carries no FK constraints
	Likes []PostLike `gorm:"foreignKey:PostID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostLike records that a user liked a post. The unique index on
// (post_id, user_id) is what makes the like set a set.
type PostLike struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	PostID string `gorm:"not null;uniqueIndex:idx_post_likes_unique" json:"post_id"`
	UserID string `gorm:"not null;uniqueIndex:idx_post_likes_unique" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID is in the post's loaded like set.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// LikeUserIDs returns the identifiers of users who liked the post.
func (p *Post) LikeUserIDs() []string {
	ids := make([]string, len(p.Likes))
	for i, like := range p.Likes {
		ids[i] = like.UserID
	}
	return ids
}
