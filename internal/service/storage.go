package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/xid"

	"github.com/forkful/backend/config"
)

// ImageStore persists an uploaded image and returns the public path or
// URL under which it is served.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// UploadFilename builds a collision-free name for an uploaded file from a
// timestamp and a random suffix, keeping the original extension.
func UploadFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), xid.New().String(), ext)
}

// LocalImageStore writes uploads to a directory on disk, served from a
// static route. This is the default backend.
type LocalImageStore struct {
	dir        string
	publicPath string
}

// NewLocalImageStore creates the uploads directory if needed.
func NewLocalImageStore(dir, publicPath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalImageStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return s.publicPath + "/" + filename, nil
}

// S3ImageStore uploads images to an S3 bucket with public-read objects.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := "recipe-images/" + filename
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}
