package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/httpout/core/response"
)

// S3Client defines the S3 operations used by Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
}

// Config contains configuration for an S3 object source.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`                          // For S3-compatible services like MinIO, Wasabi
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // Required for MinIO and some S3-compatible services
}

// Option configures a Source.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3aws.Options)
	lookupTimeout   time.Duration
}

// WithS3Client sets a pre-configured client. Primarily used for testing with mocks.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithLookupTimeout bounds the HeadObject call made by Response.
// The body stream itself is bound only by the caller's context.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.lookupTimeout = timeout
	}
}

// Source streams S3 objects as response bodies.
// Object bodies are never buffered; they go through BodyWriter.WriteFile.
type Source struct {
	client        S3Client
	bucket        string
	lookupTimeout time.Duration
}

// ObjectInfo describes an object about to be streamed.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// New creates a Source. Credentials fall back to the default AWS chain
// (environment, shared config, IAM role) when not configured.
func New(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.s3ClientOptions {
				opt(so)
			}
		})
	}

	return &Source{
		client:        client,
		bucket:        cfg.Bucket,
		lookupTimeout: o.lookupTimeout,
	}, nil
}

// Stat returns size and content type of key.
func (s *Source) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	out, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "head")
	}
	return &ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// Open starts downloading key. The caller must close the returned body.
func (s *Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get")
	}
	if out.Body == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBody, key)
	}
	return out.Body, nil
}

// Opener binds Open to ctx and key for response.StreamFile.
func (s *Source) Opener(ctx context.Context, key string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return s.Open(ctx, key)
	}
}

// Response returns a 200 response streaming key with its size and content type.
// A missing object yields NotFound, an invalid key BadRequest, any other lookup
// failure InternalServerError. The object is only downloaded when the body is written.
func (s *Source) Response(ctx context.Context, key string) response.Response {
	info, err := s.Stat(ctx, key)
	switch {
	case err == nil:
	case isNotFound(err):
		return response.NotFound()
	case isInvalidKey(err):
		return response.BadRequest(response.Text(err.Error()))
	default:
		return response.InternalServerError()
	}

	size := response.UnknownLength
	if info.Size >= 0 {
		size = int(info.Size)
	}
	return response.ServeFile(s.Opener(ctx, info.Key), path.Base(info.Key), info.ContentType, size)
}

// cleanKey rejects path traversal and strips a leading slash.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return key, nil
}
