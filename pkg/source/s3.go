package source

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/urlparts"
)

// S3API is the subset of the S3 client used by S3.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 serves pages from a bucket holding a statically exported site.
// The URL's pathname selects the object key under prefix, following the
// same index.html and .html conventions as File.
//
// Example usage:
//
//	client := s3.NewFromConfig(awsCfg)
//	src := source.NewS3(client, "site-pages", "public/")
//	markup, err := src.Fetch(ctx, "https://example.com/blog/")
//	// reads s3://site-pages/public/blog/index.html
type S3 struct {
	client S3API
	bucket string
	prefix string
}

// NewS3 creates an S3 source.
func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds an S3 client for region. endpoint, when set, selects an
// S3-compatible service and path-style addressing. Credentials come from
// provider; a nil provider sends anonymous requests.
func NewS3Client(region, endpoint string, provider aws.CredentialsProvider) *s3.Client {
	cfg := aws.Config{Region: region}
	if provider != nil {
		cfg.Credentials = aws.NewCredentialsCache(provider)
	} else {
		cfg.Credentials = aws.AnonymousCredentials{}
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

// Name implements Named.
func (s *S3) Name() string { return "s3" }

// Key returns the object key that serves url.
func (s *S3) Key(url string) string {
	pathname, _ := urlparts.Pathname(url)
	return s.prefix + pageKey(pathname)
}

// Fetch implements Source.
func (s *S3) Fetch(ctx context.Context, url string) (string, error) {
	key := s.Key(url)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", errors.New("E200").
			WithDetail("s3://" + s.bucket + "/" + key).
			Wrap(err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(io.LimitReader(out.Body, MaxPageSize))
	if err != nil {
		return "", errors.New("E200").WithDetail("reading s3://" + s.bucket + "/" + key).Wrap(err)
	}
	return string(body), nil
}
