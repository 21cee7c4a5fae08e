package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/services"
)

// S3Store implements ObjectStore against any S3-compatible endpoint,
// including Cloudflare R2.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	uploadTTL time.Duration
	logger    *slog.Logger
}

// NewS3 builds the object store from configuration.
func NewS3(cfg *config.Config, logger *slog.Logger) (*S3Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", "configuration is required", nil)
	}
	bucket := strings.TrimSpace(cfg.Storage.Bucket)
	if bucket == "" {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", "storage.bucket is not set", nil)
	}
	if strings.TrimSpace(cfg.Storage.AccessKeyID) == "" || strings.TrimSpace(cfg.Storage.SecretAccessKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", "storage credentials are not set", nil)
	}

	opts := s3.Options{
		Region: cfg.Storage.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
	}
	if endpoint := strings.TrimSpace(cfg.Storage.Endpoint); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}
	client := s3.New(opts)

	uploadTTL := time.Duration(cfg.Uploads.UploadTTLSeconds) * time.Second
	if uploadTTL <= 0 {
		uploadTTL = 15 * time.Minute
	}

	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		uploadTTL: uploadTTL,
		logger:    logging.NewComponentLogger(logger, "storage"),
	}, nil
}

// Exists probes the object with a HEAD request. Any failure, including
// transport errors, reports false after logging; callers cannot distinguish
// "absent" from "unverifiable" and must not need to.
func (s *S3Store) Exists(ctx context.Context, key string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Debug("object existence probe failed",
			logging.String(logging.FieldKey, key),
			logging.Error(err))
		return false
	}
	return true
}

func (s *S3Store) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		s.logger.Error("presign download failed",
			logging.String(logging.FieldKey, key),
			logging.Error(err))
		return "", services.Wrap(services.ErrStorage, "storage", "presign download", "",
			services.WithUserMessage("failed to generate download URL", err))
	}
	return req.URL, nil
}

func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = DefaultContentType
	}
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.uploadTTL))
	if err != nil {
		s.logger.Error("presign upload failed",
			logging.String(logging.FieldKey, key),
			logging.Error(err))
		return "", services.Wrap(services.ErrStorage, "storage", "presign upload", "",
			services.WithUserMessage("failed to generate upload URL", err))
	}
	return req.URL, nil
}

func (s *S3Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if contentType == "" {
		contentType = DefaultContentType
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("upload failed",
			logging.String(logging.FieldKey, key),
			logging.Error(err))
		return services.Wrap(services.ErrStorage, "storage", "upload", "",
			services.WithUserMessage("failed to upload video file", err))
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("delete failed",
			logging.String(logging.FieldKey, key),
			logging.Error(err))
		return services.Wrap(services.ErrStorage, "storage", "delete", "",
			services.WithUserMessage("failed to delete video file", err))
	}
	return nil
}
