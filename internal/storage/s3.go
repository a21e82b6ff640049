package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	appcfg "billboard_compliance/internal/config"
	"billboard_compliance/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store uploads report evidence to an S3-compatible bucket
type Store struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

// New builds an S3 store from config. Returns nil when storage is not
// configured; callers treat a nil store as "uploads disabled".
func New(ctx context.Context, cfg *appcfg.Config) *Store {
	if cfg.S3Bucket == "" || cfg.S3AccessKeyID == "" {
		logger.Warn("object storage not configured, evidence uploads disabled")
		return nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
		)),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Error("failed to load S3 config", "error", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	cdn := cfg.CDNBaseURL
	if cdn == "" {
		cdn = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.S3Endpoint, "/"), cfg.S3Bucket)
	}

	return &Store{client: client, bucket: cfg.S3Bucket, cdnBaseURL: cdn}
}

// UploadEvidence stores a multipart file under a fresh key and returns the
// public URL
func (s *Store) UploadEvidence(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(fh.Filename))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(fh.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload to bucket: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.cdnBaseURL, key), nil
}

// Delete removes a previously uploaded object given its public URL
func (s *Store) Delete(ctx context.Context, publicURL string) error {
	key := strings.TrimPrefix(publicURL, s.cdnBaseURL+"/")
	if key == publicURL || key == "" {
		// URL does not belong to this bucket
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
