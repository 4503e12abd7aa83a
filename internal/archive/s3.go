package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client stores raw import batches in an S3-compatible bucket (AWS S3 or
// Cloudflare R2) so failed imports can be replayed or inspected later.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewFromEnv builds the archive client from environment variables:
//
//	ARCHIVE_S3_BUCKET    (required to enable archiving)
//	ARCHIVE_S3_REGION    (default us-east-1)
//	ARCHIVE_S3_ENDPOINT  (optional, for R2/MinIO)
//	ARCHIVE_S3_ACCESS_KEY / ARCHIVE_S3_SECRET_KEY (optional, falls back to
//	the default credentials chain)
//
// Returns (nil, nil) when no bucket is configured; archiving is optional.
func NewFromEnv(ctx context.Context) (*Client, error) {
	bucket := os.Getenv("ARCHIVE_S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	region := os.Getenv("ARCHIVE_S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := os.Getenv("ARCHIVE_S3_ACCESS_KEY"); key != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("ARCHIVE_S3_SECRET_KEY"), "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("ARCHIVE_S3_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{s3: client, bucket: bucket}, nil
}

// ArchiveImport uploads one raw batch payload under the given key.
func (c *Client) ArchiveImport(ctx context.Context, key string, payload []byte) error {
	contentType := "text/csv"
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	})
	return err
}
