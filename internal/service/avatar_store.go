package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"lessonhub/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/rs/zerolog"
)

// AvatarStore keeps avatar images and returns the URL they are served from.
type AvatarStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type s3AvatarStore struct {
	s3Client   *s3.Client
	bucketName string
	publicBase string
	logger     zerolog.Logger
}

// NewS3AvatarStore talks to Supabase Storage through its S3-compatible endpoint.
// Objects are served from <SUPABASE_URL>/storage/v1/object/public/<bucket>/<key>.
func NewS3AvatarStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (AvatarStore, error) {
	s3Config, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})
	return newS3AvatarStore(s3Client, cfg.S3Bucket, cfg.SupabaseURL, logger), nil
}

func newS3AvatarStore(s3Client *s3.Client, bucket, supabaseURL string, logger zerolog.Logger) *s3AvatarStore {
	return &s3AvatarStore{
		s3Client:   s3Client,
		bucketName: bucket,
		publicBase: fmt.Sprintf("%s/storage/v1/object/public/%s", strings.TrimRight(supabaseURL, "/"), bucket),
		logger:     logger.With().Str("service", "AvatarStore").Logger(),
	}
}

func (s *s3AvatarStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to upload avatar")
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.publicBase + "/" + key, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
