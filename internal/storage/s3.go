// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client used to
// turn media references held in components into public URLs. It wraps the
// AWS SDK v2 and is configured for path-style access (required by
// CEPH/Hetzner).
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// mediaPrefix marks a reference as an object key in the public bucket.
const mediaPrefix = "media/"

// Client wraps an S3 client for the public media bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// New creates an S3 storage client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// FileURL returns the public URL for a key in the media bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	key = strings.TrimLeft(key, "/")
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ResolveMediaURL turns a component media reference into a URL a page
// can load. Object keys under media/ become public bucket URLs; absolute
// URLs and anything else pass through unchanged. A nil client leaves
// every reference untouched.
func (c *Client) ResolveMediaURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if c == nil || ref == "" {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}
	if key := strings.TrimLeft(ref, "/"); strings.HasPrefix(key, mediaPrefix) {
		return c.FileURL(key)
	}
	return ref
}

// Exists reports whether the object behind a media reference is present
// in the bucket. References that do not point into the bucket are
// reported as absent without a request.
func (c *Client) Exists(ctx context.Context, ref string) (bool, error) {
	key, ok := c.ObjectKey(ref)
	if !ok {
		return false, nil
	}

	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("s3 head %s/%s: %w", c.bucket, key, err)
	}
	return true, nil
}

// ObjectKey extracts the object key from a media reference: a bare key
// under media/ or a URL produced by FileURL. Returns ("", false) if the
// reference does not belong to this storage.
func (c *Client) ObjectKey(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if key := strings.TrimLeft(ref, "/"); strings.HasPrefix(key, mediaPrefix) {
		return key, true
	}

	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(ref, prefix) {
			return ref[len(prefix):], true
		}
	}

	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(ref, prefix) {
		return ref[len(prefix):], true
	}

	return "", false
}

// Bucket returns the name of the media bucket.
func (c *Client) Bucket() string {
	return c.bucket
}
