package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
type MinioStorage struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinioStorage creates a MinIO client. Unlike the Azure and S3 backends
// the bucket is not touched here; EnsureContainer does that per request.
func NewMinioStorage(endpoint, accessKey, secretKey, region, bucket string, useSSL bool, timeout time.Duration) (*MinioStorage, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("minio connection string: Endpoint is required")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:    useSSL,
		Region:    region,
		Transport: newTransport(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStorage{client: client, bucket: bucket, region: region}, nil
}

func (s *MinioStorage) Container() string { return s.bucket }

// EnsureContainer makes the bucket and swallows the "already exists" answers.
func (s *MinioStorage) EnsureContainer(ctx context.Context) error {
	err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return nil
	}
	// Some gateways answer with a generic error; fall back to an existence check.
	if exists, errExists := s.client.BucketExists(ctx, s.bucket); errExists == nil && exists {
		return nil
	}
	return fmt.Errorf("create bucket %q: %w", s.bucket, err)
}

// Upload streams reader to MinIO under key. size must be the exact byte count
// (pass -1 only if the size is genuinely unknown, MinIO will buffer it).
func (s *MinioStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStorage) List(ctx context.Context) ([]Object, error) {
	var out []Object
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects in %q: %w", s.bucket, obj.Err)
		}
		out = append(out, Object{Key: obj.Key, Size: obj.Size})
	}
	return out, nil
}
