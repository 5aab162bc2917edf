package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gatherly/internal/domain"
)

// S3Config holds configuration for the S3 avatar store.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// StorageConfig holds configuration for creating an avatar store.
type StorageConfig struct {
	Provider string
	S3       S3Config
}

// NewAvatarStorage creates an avatar store from config. Provider "s3" uses
// AWS S3; "noop" or unknown uses a no-op store that returns a placeholder URL.
func NewAvatarStorage(config StorageConfig) (domain.AvatarStorage, error) {
	switch config.Provider {
	case "s3":
		awsCfg := aws.Config{
			Region: config.S3.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.S3.AccessKeyID,
					config.S3.SecretAccessKey,
					"",
				),
			),
		}
		return &s3Store{
			client: s3.NewFromConfig(awsCfg),
			bucket: config.S3.Bucket,
			region: config.S3.Region,
		}, nil
	case "noop":
		return &noopStore{}, nil
	default:
		log.Printf("[STORAGE] Unknown storage provider %q, using noop", config.Provider)
		return &noopStore{}, nil
	}
}

type s3Store struct {
	client *s3.Client
	bucket string
	region string
}

func (s *s3Store) Store(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

type noopStore struct{}

func (n *noopStore) Store(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	log.Println("[STORAGE] Object would be stored (noop)", "key", key)
	return "https://storage.invalid/" + key, nil
}
