package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/fs/internal/pathutil"
	"github.com/jmgilman/go/filehandler/fs/internal/types"
	"github.com/jmgilman/go/filehandler/fs/minio/internal/errs"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultMultipartThreshold = 5 * 1024 * 1024

// MinioFS implements core.FS for MinIO/S3-compatible storage.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client             *minio.Client
	bucket             string // Fixed bucket; empty means bucket comes from the path
	prefix             string // Optional prefix for all keys
	multipartThreshold int64
}

// NewMinIO creates a MinIO-backed filesystem.
// No request is made; connection problems surface on first use.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentialsFor(cfg),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	threshold := cfg.MultipartThreshold
	if threshold == 0 {
		threshold = defaultMultipartThreshold
	}

	return &MinioFS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.NormalizePrefix(cfg.Prefix),
		multipartThreshold: threshold,
	}, nil
}

// credentialsFor returns static credentials when keys are configured and
// the default provider chain otherwise.
func credentialsFor(cfg Config) *credentials.Credentials {
	if cfg.AccessKey != "" {
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.EnvMinio{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
	})
}

// locate maps a filesystem name to its bucket and object key.
func (m *MinioFS) locate(op, name string) (string, string, error) {
	if m.bucket != "" {
		key := pathutil.JoinPath(m.prefix, name)
		if key == "" {
			return "", "", errs.PathError(op, name, fs.ErrInvalid)
		}
		return m.bucket, key, nil
	}
	bucket, key, err := pathutil.SplitBucket(name)
	if err != nil {
		return "", "", errs.PathError(op, name, fmt.Errorf("%w: %v", fs.ErrInvalid, err))
	}
	return bucket, pathutil.JoinPath(m.prefix, key), nil
}

// Type reports FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// Open opens the named object for streaming reads.
func (m *MinioFS) Open(name string) (fs.File, error) {
	bucket, key, err := m.locate("open", name)
	if err != nil {
		return nil, err
	}
	return newStreamingFile(context.Background(), m, bucket, key, name)
}

// Stat returns object metadata.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	bucket, key, err := m.locate("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := m.client.StatObject(context.Background(), bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("stat", name, errs.Translate(err))
	}
	return types.NewFileInfo(key, info.Size, info.LastModified), nil
}

// ReadFile reads the whole object.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	f, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	return data, nil
}

// Exists reports whether the named object exists.
func (m *MinioFS) Exists(name string) (bool, error) {
	_, err := m.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create opens the named object for writing. Nothing is uploaded until
// Close, so the object is replaced in one step.
func (m *MinioFS) Create(name string) (core.File, error) {
	return m.CreateAtomic(name)
}

// CreateAtomic is Create; S3 PUTs are already all-or-nothing.
// Abort drops buffered data or cancels an in-flight streaming upload.
func (m *MinioFS) CreateAtomic(name string) (core.AbortableFile, error) {
	bucket, key, err := m.locate("create", name)
	if err != nil {
		return nil, err
	}
	return newFileWrite(m, bucket, key, name), nil
}

// WriteFile uploads data as the named object.
func (m *MinioFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	f, err := m.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.(core.Aborter).Abort()
		return errs.PathError("writefile", name, err)
	}
	return f.Close()
}

// MkdirAll is a no-op; S3 directories are virtual.
func (m *MinioFS) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

// Remove deletes the named object. Deleting a missing object succeeds.
func (m *MinioFS) Remove(name string) error {
	bucket, key, err := m.locate("remove", name)
	if err != nil {
		return err
	}
	if err := m.client.RemoveObject(context.Background(), bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errs.PathError("remove", name, errs.Translate(err))
	}
	return nil
}

// Rename copies oldpath to newpath then deletes oldpath.
// It is not atomic: if the delete fails both objects exist.
func (m *MinioFS) Rename(oldpath, newpath string) error {
	srcBucket, srcKey, err := m.locate("rename", oldpath)
	if err != nil {
		return err
	}
	dstBucket, dstKey, err := m.locate("rename", newpath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		return errs.PathError("rename", oldpath, errs.Translate(err))
	}
	if err := m.client.RemoveObject(ctx, srcBucket, srcKey, minio.RemoveObjectOptions{}); err != nil {
		return errs.PathError("rename", oldpath, errs.Translate(err))
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.FS       = (*MinioFS)(nil)
	_ core.AtomicFS = (*MinioFS)(nil)
)
