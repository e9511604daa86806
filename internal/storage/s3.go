// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// portfolio image uploads. It wraps the AWS SDK v2 and is configured for
// path-style access so MinIO, CEPH and Hetzner endpoints work unchanged.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Options configures the object store.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // optional CDN/direct URL for stored files
}

// Client wraps an S3 client bound to a single public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if the endpoint, bucket or credentials are empty, allowing
// the app to start without storage.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, nil
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required when an endpoint is set")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	endpoint := strings.TrimRight(opts.Endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    opts.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

// Put stores an object with a public-read ACL so it can be served directly.
func (c *Client) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Delete removes an object.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// URL returns the public URL of a stored object. Uses the configured public
// URL if set, otherwise builds a path-style URL.
func (c *Client) URL(key string) string {
	return baseURL(c.endpoint, c.bucket, c.publicURL) + "/" + key
}

// KeyFromURL extracts the object key from a URL produced by URL. It returns
// ("", false) for URLs that point elsewhere.
func (c *Client) KeyFromURL(rawURL string) (string, bool) {
	prefix := baseURL(c.endpoint, c.bucket, c.publicURL) + "/"
	if !strings.HasPrefix(rawURL, prefix) || len(rawURL) == len(prefix) {
		return "", false
	}
	return rawURL[len(prefix):], true
}

func baseURL(endpoint, bucket, publicURL string) string {
	if publicURL != "" {
		return publicURL
	}
	return endpoint + "/" + bucket
}

// ObjectKey builds a unique key for an uploaded file:
// portfolio/<yyyy>/<mm>/<slugged-name>-<id><ext>. The original name only
// contributes a readable slug; ext should include the leading dot.
func ObjectKey(filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "upload"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("portfolio/%d/%02d/%s-%s%s", now.Year(), now.Month(), name, id, strings.ToLower(ext))
}
