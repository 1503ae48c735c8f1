// Package s3 stores notebook documents as objects in an S3-compatible bucket
// (AWS S3, MinIO, Cloudflare R2).
package s3

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// Client is the subset of *s3.Client the backend calls.
type Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config describes the bucket and credentials.
type Config struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket" validate:"required"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	// Endpoint overrides the AWS endpoint and switches to path-style
	// addressing, as MinIO requires.
	Endpoint string `yaml:"endpoint"`
	// Prefix is prepended to every object key.
	Prefix string `yaml:"prefix"`
}

// Backend implements core.Backend on top of S3 objects.
type Backend struct {
	client Client
	bucket string
	prefix string
	logger *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// New wraps an existing client.
func New(client Client, bucket, prefix string, opts ...Option) *Backend {
	b := &Backend{client: client, bucket: bucket, prefix: prefix, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromConfig builds an s3.Client from cfg. Static credentials are used
// when an access key is set; otherwise the default AWS chain applies.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Backend, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "s3")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return New(client, cfg.Bucket, cfg.Prefix, opts...), nil
}

func (b *Backend) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Read fetches the object body. A missing key yields core.ErrNotFound.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, core.ErrNotFound
		}
		return nil, errors.Wrap(err, "s3")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrap(err, "s3")
	}
	return data, nil
}

// Write replaces the object with data.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			b.logger.Error("bucket does not exist", zap.String("bucket", b.bucket))
		}
		return errors.Wrap(err, "s3")
	}
	b.logger.Debug("stored notebook in s3",
		zap.String("bucket", b.bucket),
		zap.String("key", b.key(name)),
		zap.Int("bytes", len(data)))
	return nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "s3"
}

var _ core.Backend = (*Backend)(nil)
