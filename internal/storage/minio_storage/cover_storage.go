package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// CoverStorage keeps book cover images in a single bucket, one object per
// book. Re-uploading a cover overwrites the previous object.
type CoverStorage struct {
	storage   *MinioStorage
	bucket    string
	publicURL string
}

func NewCoverStorage(ctx context.Context, storage *MinioStorage, bucket, publicURL string) (*CoverStorage, error) {
	if err := storage.EnsureBucket(ctx, bucket); err != nil {
		return nil, err
	}
	return &CoverStorage{
		storage:   storage,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *CoverStorage) UploadCover(
	ctx context.Context,
	bookID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}

	objectKey := fmt.Sprintf("books/%s/cover%s", bookID.String(), ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectKey), nil
}

// DeleteCover removes the object behind a previously issued cover URL. URLs
// that were not issued by this storage are ignored.
func (s *CoverStorage) DeleteCover(ctx context.Context, coverURL string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(coverURL, prefix) {
		return nil
	}
	objectKey := strings.TrimPrefix(coverURL, prefix)
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
