// Package publish uploads saved láminas to an S3-compatible bucket.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lamina/internal/gallery"
	"lamina/internal/logging"
)

// Options configures a Publisher.
type Options struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
	// Region skips the bucket location lookup when set.
	Region string
}

// Publisher writes images to one bucket.
type Publisher struct {
	client *minio.Client
	bucket string
	prefix string
}

// Result describes one uploaded object.
type Result struct {
	ID     string
	Key    string
	Size   int64
	ETag   string
	Bucket string
}

// New creates a Publisher. It does not contact the server.
func New(opts Options) (*Publisher, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("publish endpoint and bucket are required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &Publisher{client: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

// ObjectKey returns [prefix/]<type>/<id>.jpg.
func ObjectKey(prefix string, img gallery.SavedImage) string {
	return path.Join(prefix, string(img.Type), img.ID+".jpg")
}

// EnsureBucket creates the bucket if it doesn't exist.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	logging.Publish("Created bucket: %s", p.bucket)
	return nil
}

// Publish uploads img. The content type is detected from the bytes.
func (p *Publisher) Publish(ctx context.Context, img gallery.SavedImage) (Result, error) {
	data, err := img.Bytes()
	if err != nil {
		return Result{}, err
	}
	key := ObjectKey(p.prefix, img)
	contentType := mimetype.Detect(data).String()

	info, err := p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"lamina-id":       img.ID,
			"lamina-saved-at": fmt.Sprintf("%d", img.SavedAt),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload %s: %w", img.ID, err)
	}

	logging.Publish("Uploaded %s to %s/%s (%d bytes)", img.ID, p.bucket, key, info.Size)
	return Result{ID: img.ID, Key: key, Size: info.Size, ETag: info.ETag, Bucket: p.bucket}, nil
}
