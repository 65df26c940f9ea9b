package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/auth"
	"github.com/hearthside/backend/internal/posts"
	"github.com/hearthside/backend/internal/storage"
)

// maxPictureSize caps post picture uploads at 8 MB
const maxPictureSize = 8 << 20

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	accounts *auth.Service
	posts    *posts.Service
	uploader storage.PictureUploader
}

// NewHandlers creates a new handlers instance
func NewHandlers(accounts *auth.Service, postService *posts.Service, uploader storage.PictureUploader) *Handlers {
	return &Handlers{
		accounts: accounts,
		posts:    postService,
		uploader: uploader,
	}
}

// readPictureUpload extracts an optional "picture" file from a multipart
// request. Returns nil data when the request carries no file.
func readPictureUpload(c *gin.Context) ([]byte, string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, "", nil
	}

	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		// multipart request without a picture field is fine
		return nil, "", nil
	}
	defer file.Close()

	if header.Size > maxPictureSize {
		return nil, "", fmt.Errorf("picture exceeds %d bytes", int64(maxPictureSize))
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPictureSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read picture: %w", err)
	}
	if len(data) > maxPictureSize {
		return nil, "", fmt.Errorf("picture exceeds %d bytes", int64(maxPictureSize))
	}

	return data, header.Filename, nil
}
