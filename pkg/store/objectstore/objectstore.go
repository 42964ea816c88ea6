// Package objectstore fetches report documents kept in S3.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	Scheme        = "s3://"
	DefaultRegion = "us-east-1" // used when the AWS profile has none
	// MaxObjectSize caps how much of a single object is read into memory.
	MaxObjectSize = 64 << 20
)

type URI struct {
	Bucket string
	Key    string
}

func (u URI) String() string {
	return Scheme + u.Bucket + "/" + u.Key
}

func IsURI(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURI splits "s3://bucket/key" into its parts.
func ParseURI(s string) (URI, error) {
	if !IsURI(s) {
		return URI{}, fmt.Errorf("not an s3 uri: %q", s)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(s, Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return URI{}, fmt.Errorf("s3 uri must name a bucket and a key: %q", s)
	}
	return URI{Bucket: bucket, Key: key}, nil
}

// ObjectGetter is the part of the S3 API the fetcher needs; *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Fetcher struct {
	client ObjectGetter
}

func NewFetcher(client ObjectGetter) *Fetcher {
	return &Fetcher{client: client}
}

// NewDefaultFetcher builds a fetcher from the shared AWS configuration,
// optionally pinned to a named profile.
func NewDefaultFetcher(ctx context.Context, profile string) (*Fetcher, error) {
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewFetcher(s3.NewFromConfig(awsCfg)), nil
}

// Fetch downloads the object named by uri.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(u.Bucket),
		Key:    awssdk.String(u.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", u, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}
	if len(data) > MaxObjectSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", u, MaxObjectSize)
	}
	return data, nil
}
