package clients

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
	URLExpiry       time.Duration
}

// S3Store uploads report artifacts to an S3-compatible bucket and serves
// presigned download URLs. It satisfies ReportStore.
type S3Store struct {
	raw       *minio.Client
	bucket    string
	prefix    string
	urlExpiry time.Duration
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 20 * time.Minute
	}
	return &S3Store{raw: client, bucket: cfg.Bucket, prefix: cfg.Prefix, urlExpiry: expiry}, nil
}

func (c *S3Store) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	key := c.prefix + fileName

	_, err := c.raw.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return "", fmt.Errorf("put object %q failed: %w", key, err)
	}
	return key, nil
}

func (c *S3Store) GetURL(ctx context.Context, key string) (string, error) {
	u, err := c.raw.PresignedGetObject(ctx, c.bucket, key, c.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign get object %q failed: %w", key, err)
	}
	return u.String(), nil
}
