// Package awsv2 provides an S3 implementation of core.FS on aws-sdk-go-v2.
//
// It is the alternative to the minio package for deployments that rely on
// the AWS SDK credential chain (SSO, shared config profiles, web identity).
// Multipart uploads go through feature/s3/manager.
package awsv2

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds S3 filesystem configuration.
type Config struct {
	// Endpoint overrides the service URL (e.g. "http://localhost:9000").
	// Leave empty for AWS.
	Endpoint string

	// Region is the signing region. Empty defers to the SDK's shared config.
	Region string

	// Bucket pins the filesystem to one bucket. When empty, the first path
	// element of every name is the bucket.
	Bucket string

	// Prefix is an optional key prefix applied to every object.
	Prefix string

	// AccessKey, SecretKey and SessionToken are static credentials.
	// When AccessKey is empty the SDK default chain is used.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// UsePathStyle addresses buckets as path segments; required for MinIO.
	UsePathStyle bool

	// PartSize is the multipart part size. Default: manager.DefaultUploadPartSize.
	PartSize int64

	// Client is an optional pre-configured S3 client.
	// If provided, Endpoint, Region and credential fields are ignored.
	Client *s3.Client
}

func (c *Config) validate() error {
	if c.AccessKey != "" && c.SecretKey == "" {
		return fmt.Errorf("secret key is required when access key is set")
	}
	if c.PartSize != 0 && c.PartSize < manager.MinUploadPartSize {
		return fmt.Errorf("part size must be at least %d bytes", manager.MinUploadPartSize)
	}
	return nil
}
