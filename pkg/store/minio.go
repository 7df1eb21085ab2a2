package store

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds connection settings for an S3-compatible backend.
// Everything here is fixed when the store is built and never mutated.
type MinioConfig struct {
	Endpoint  string // Host:port of the service, e.g. "127.0.0.1:9000"
	AccessKey string
	SecretKey string
	Bucket    string // Bucket all objects live in
	Region    string
	UseSSL    bool
}

// MinioStore is an ObjectStore backed by an S3-compatible service. The
// minio client manages its own connection pooling, so a single MinioStore
// is safe for concurrent use.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore builds a bucket-scoped store from the given configuration.
func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, &TransportError{Op: "connect", Err: err}
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the configured bucket if it does not already exist.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return &TransportError{Op: "bucket-exists", Err: err}
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return &TransportError{Op: "make-bucket", Err: err}
	}
	return nil
}

// Put writes data under key in the configured bucket.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte) error {
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return &TransportError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// Get returns the full object stored under key. A missing key maps to
// ErrNotFound; everything else is a TransportError.
func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &TransportError{Op: "get", Key: key, Err: err}
	}
	defer obj.Close()

	// GetObject is lazy: NoSuchKey only surfaces once the body is read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, &TransportError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}
