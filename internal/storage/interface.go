package storage

import (
	"context"
)

// PictureUploader stores post pictures and hands back a public URL. Posts
// keep the URL only; the bytes live with whichever implementation is wired.
type PictureUploader interface {
	UploadPicture(ctx context.Context, data []byte, userID, originalFilename string) (*UploadResult, error)
	DeletePicture(ctx context.Context, key string) error
}

// UploadResult contains the result of a picture upload
type UploadResult struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

var (
	_ PictureUploader = (*S3Uploader)(nil)
	_ PictureUploader = (*LocalUploader)(nil)
)
