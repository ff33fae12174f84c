// Package minio provides a MinIO/S3-compatible implementation of core.FS.
package minio

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the server host[:port] (e.g. "s3.amazonaws.com", "localhost:9000").
	Endpoint string

	// Bucket pins the filesystem to one bucket. When empty, the first path
	// element of every name is the bucket ("bucket/key").
	Bucket string

	// Region is the bucket region. Optional; discovered by the client when empty.
	Region string

	// AccessKey, SecretKey and SessionToken are static credentials.
	// When AccessKey is empty the default chain is used: AWS_* and MINIO_*
	// environment variables, the shared credentials file, then IAM.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// UseSSL enables HTTPS connections.
	UseSSL bool

	// Prefix is an optional key prefix applied to every object.
	Prefix string

	// Client is an optional pre-configured MinIO client.
	// If provided, Endpoint and credential fields are ignored.
	Client *minio.Client

	// MultipartThreshold is the buffered size above which writes switch to
	// a streaming upload. Default: 5MB.
	MultipartThreshold int64
}

// validate checks that a client can be built from the configuration.
func (c *Config) validate() error {
	if c.Client != nil {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey != "" && c.SecretKey == "" {
		return fmt.Errorf("secret key is required when access key is set")
	}
	if c.MultipartThreshold < 0 {
		return fmt.Errorf("multipart threshold must not be negative")
	}
	return nil
}
