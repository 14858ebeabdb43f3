// Package storage publishes documentation snapshots to S3-compatible object
// storage. A snapshot lives under its own prefix:
//
//	<prefix>/pages/<document path>.md
//	<prefix>/metadata.json
//
// and the LATEST object at the bucket root names the newest snapshot.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LatestAlias resolves to the prefix recorded in the LATEST object.
const LatestAlias = "latest"

const latestObject = "LATEST"

// Config holds S3/MinIO client configuration.
type Config struct {
	Endpoint        string // "localhost:9000" for MinIO
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// Client wraps the MinIO/S3 client for snapshot operations.
type Client struct {
	minioClient *minio.Client
	bucket      string
}

// New creates a new S3/MinIO client.
func New(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	minioClient, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{
		minioClient: minioClient,
		bucket:      config.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.minioClient.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := c.minioClient.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Metadata describes a published snapshot.
type Metadata struct {
	Timestamp     string   `json:"timestamp"`
	Source        string   `json:"source"`
	DocumentCount int      `json:"document_count"`
	Documents     []string `json:"documents"` // document IDs
}

// PutMarkdown writes a markdown page under the snapshot prefix.
func (c *Client) PutMarkdown(ctx context.Context, prefix, name, content string) error {
	return c.put(ctx, pageObject(prefix, name), []byte(content), "text/markdown")
}

// PutMetadata writes the snapshot metadata JSON.
func (c *Client) PutMetadata(ctx context.Context, prefix string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return c.put(ctx, path.Join(prefix, "metadata.json"), data, "application/json")
}

// SetLatest points the LATEST object at prefix.
func (c *Client) SetLatest(ctx context.Context, prefix string) error {
	return c.put(ctx, latestObject, []byte(prefix), "text/plain")
}

// ResolvePrefix maps LatestAlias to the newest snapshot prefix. Other
// prefixes are returned unchanged.
func (c *Client) ResolvePrefix(ctx context.Context, prefix string) (string, error) {
	if prefix != LatestAlias {
		return prefix, nil
	}
	data, err := c.get(ctx, latestObject)
	if err != nil {
		return "", fmt.Errorf("failed to resolve latest snapshot: %w", err)
	}
	resolved := strings.TrimSpace(string(data))
	if resolved == "" {
		return "", fmt.Errorf("LATEST object in bucket %s is empty", c.bucket)
	}
	return resolved, nil
}

// ListMarkdownFiles returns the markdown pages under a snapshot prefix,
// relative to its pages/ directory.
func (c *Client) ListMarkdownFiles(ctx context.Context, prefix string) ([]string, error) {
	prefix, err := c.ResolvePrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	pagesPrefix := path.Join(prefix, "pages") + "/"
	var files []string

	objectCh := c.minioClient.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    pagesPrefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		if isMarkdownKey(object.Key) {
			files = append(files, strings.TrimPrefix(object.Key, pagesPrefix))
		}
	}

	return files, nil
}

// GetMarkdown reads a markdown page from a snapshot.
func (c *Client) GetMarkdown(ctx context.Context, prefix, name string) (string, error) {
	prefix, err := c.ResolvePrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	data, err := c.get(ctx, pageObject(prefix, name))
	if err != nil {
		return "", fmt.Errorf("failed to get markdown: %w", err)
	}
	return string(data), nil
}

// GetMetadata reads the metadata of a snapshot.
func (c *Client) GetMetadata(ctx context.Context, prefix string) (*Metadata, error) {
	prefix, err := c.ResolvePrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, path.Join(prefix, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &meta, nil
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

func (c *Client) put(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := c.minioClient.PutObject(ctx, c.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", objectName, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, objectName string) ([]byte, error) {
	object, err := c.minioClient.GetObject(ctx, c.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	return io.ReadAll(object)
}

func pageObject(prefix, name string) string {
	return path.Join(prefix, "pages", name)
}

func isMarkdownKey(key string) bool {
	switch strings.ToLower(path.Ext(key)) {
	case ".md", ".mdx", ".markdown":
		return true
	default:
		return false
	}
}
