// Package s3 implements the blob store on any S3-compatible object storage
// (AWS S3 in production, MinIO in development).
package s3

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vidtube/platform/internal/core/domain"
)

// Config captures the settings for the media bucket.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional; set for S3-compatible services
	AccessKey string
	SecretKey string
	// PublicBaseURL is the base under which uploaded objects are reachable.
	// Defaults to the virtual-hosted AWS URL when empty.
	PublicBaseURL string
}

// BlobStore implements ports.BlobStore against one bucket.
type BlobStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// New builds the S3 client and returns a BlobStore for cfg.Bucket.
func New(ctx context.Context, cfg Config) (*BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &BlobStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload promotes a locally staged file into the bucket and returns its
// locator. The object key is the deletable reference.
func (b *BlobStore) Upload(ctx context.Context, localPath string) (domain.Asset, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	key := objectKey(localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return domain.Asset{}, fmt.Errorf("put object: %w", err)
	}

	return domain.Asset{URL: b.baseURL + "/" + key, Ref: key}, nil
}

// Delete removes an object by its key. Callers treat failures as
// best-effort.
func (b *BlobStore) Delete(ctx context.Context, ref string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// objectKey spreads uploads by date and randomizes the name so unrelated
// uploads can never collide.
func objectKey(localPath string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(localPath))
}
