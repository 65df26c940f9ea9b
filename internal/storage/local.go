package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalUploader stores post pictures on local disk. Used in development and
// tests when no S3 bucket is configured.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates an uploader rooted at dir. Files are served from
// baseURL (e.g. "/uploads").
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalUploader{dir: dir, baseURL: baseURL}, nil
}

// UploadPicture writes the picture under dir/{userID}/{fileID}{ext}
func (u *LocalUploader) UploadPicture(ctx context.Context, data []byte, userID, originalFilename string) (*UploadResult, error) {
	fileID := uuid.New().String()
	extension := strings.ToLower(filepath.Ext(originalFilename))
	if extension == "" {
		extension = ".jpg"
	}

	key := filepath.Join(userID, fileID+extension)
	path := filepath.Join(u.dir, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write picture: %w", err)
	}

	return &UploadResult{
		Key:  key,
		URL:  strings.TrimSuffix(u.baseURL, "/") + "/" + filepath.ToSlash(key),
		Size: int64(len(data)),
	}, nil
}

// DeletePicture removes a stored picture
func (u *LocalUploader) DeletePicture(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(u.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete picture: %w", err)
	}
	return nil
}
