package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// S3Storage implements domain.MediaStorage on an S3 bucket. The public id is
// the full object key, so deletion needs no extra lookup.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	baseURL   string
	keyPrefix string
}

// NewS3Storage creates a new S3-backed media store. baseURL overrides the
// default virtual-hosted URL, for buckets served through a CDN.
func NewS3Storage(ctx context.Context, region, bucket, baseURL, keyPrefix string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}, nil
}

// Upload implements domain.MediaStorage
func (s *S3Storage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (string, string, error) {
	key := s.objectKey(folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.objectURL(key), key, nil
}

// Remove implements domain.MediaStorage
func (s *S3Storage) Remove(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3Storage) objectKey(folder, filename string) string {
	ext := path.Ext(filename)
	name := uuid.NewString() + ext
	parts := []string{}
	if s.keyPrefix != "" {
		parts = append(parts, s.keyPrefix)
	}
	if folder != "" {
		parts = append(parts, strings.Trim(folder, "/"))
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func (s *S3Storage) objectURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

var _ domain.MediaStorage = (*S3Storage)(nil)
