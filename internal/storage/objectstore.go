package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const uriScheme = "s3://"

// ErrNotConfigured is returned when an s3:// location is used without an
// object storage endpoint.
var ErrNotConfigured = errors.New("object storage is not configured (set ENVIOSCAN_S3_ENDPOINT)")

// ObjectOptions configures an ObjectStore.
type ObjectOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string // default bucket for uploads
	UseSSL    bool
}

// ObjectStore reads and writes reports in an S3-compatible bucket.
type ObjectStore struct {
	client *minio.Client
	bucket string
	region string
}

func NewObjectStore(opts ObjectOptions) (*ObjectStore, error) {
	if opts.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object storage: %w", err)
	}
	return &ObjectStore{client: cli, bucket: opts.Bucket, region: opts.Region}, nil
}

// IsURI reports whether s names an object storage location.
func IsURI(s string) bool {
	return strings.HasPrefix(s, uriScheme)
}

// ParseURI splits "s3://bucket/prefix" into its bucket and key prefix.
func ParseURI(uri string) (bucket, prefix string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("not an s3:// location: %q", uri)
	}
	bucket, prefix, _ = strings.Cut(strings.TrimPrefix(uri, uriScheme), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", uri)
	}
	return bucket, prefix, nil
}

// Fetch loads every object under uri. A uri naming a single object returns
// just that object. Objects that fail to download come back with Err set.
func (s *ObjectStore) Fetch(ctx context.Context, uri string) ([]Blob, error) {
	bucket, prefix, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	var out []Blob
	objects := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", uri, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		out = append(out, s.fetchObject(ctx, bucket, obj))
	}
	return out, nil
}

func (s *ObjectStore) fetchObject(ctx context.Context, bucket string, info minio.ObjectInfo) Blob {
	b := Blob{Name: path.Base(info.Key), ContentType: info.ContentType}
	if b.ContentType == "" {
		b.ContentType = contentTypeFor(info.Key)
	}
	if info.Size > MaxBlobSize {
		b.Err = ErrTooLarge
		return b
	}

	obj, err := s.client.GetObject(ctx, bucket, info.Key, minio.GetObjectOptions{})
	if err != nil {
		b.Err = err
		return b
	}
	defer obj.Close()

	b.Data, b.Err = readLimited(obj)
	return b
}

// Upload stores data under key in the default bucket, creating the bucket
// if needed, and returns the object's s3:// location.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte) (string, error) {
	if s.bucket == "" {
		return "", errors.New("no upload bucket configured (set ENVIOSCAN_S3_BUCKET)")
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return "", fmt.Errorf("creating bucket %s: %w", s.bucket, err)
		}
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(key),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return uriScheme + s.bucket + "/" + key, nil
}
