package awsv2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/fs/internal/pathutil"
	"github.com/jmgilman/go/filehandler/fs/internal/types"
)

// S3FS implements core.FS on an aws-sdk-go-v2 S3 client.
type S3FS struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// New creates an S3-backed filesystem. Shared AWS configuration is loaded
// from the environment; no request is made to the service.
func New(ctx context.Context, cfg Config) (*S3FS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		if cfg.AccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize > 0 {
			u.PartSize = cfg.PartSize
		}
	})

	return &S3FS{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   pathutil.NormalizePrefix(cfg.Prefix),
	}, nil
}

func (s *S3FS) locate(op, name string) (string, string, error) {
	if s.bucket != "" {
		key := pathutil.JoinPath(s.prefix, name)
		if key == "" {
			return "", "", pathError(op, name, fs.ErrInvalid)
		}
		return s.bucket, key, nil
	}
	bucket, key, err := pathutil.SplitBucket(name)
	if err != nil {
		return "", "", pathError(op, name, fmt.Errorf("%w: %v", fs.ErrInvalid, err))
	}
	return bucket, pathutil.JoinPath(s.prefix, key), nil
}

// Type reports FSTypeRemote.
func (s *S3FS) Type() core.FSType {
	return core.FSTypeRemote
}

// Open issues a GetObject and streams its body.
func (s *S3FS) Open(name string) (fs.File, error) {
	bucket, key, err := s.locate("open", name)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, pathError("open", name, translate(err))
	}

	return &readFile{
		fs:     s,
		bucket: bucket,
		key:    key,
		name:   name,
		body:   out.Body,
		info:   types.NewFileInfo(key, aws.ToInt64(out.ContentLength), aws.ToTime(out.LastModified)),
	}, nil
}

// Stat issues a HeadObject.
func (s *S3FS) Stat(name string) (fs.FileInfo, error) {
	bucket, key, err := s.locate("stat", name)
	if err != nil {
		return nil, err
	}

	out, err := s.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, pathError("stat", name, translate(err))
	}
	return types.NewFileInfo(key, aws.ToInt64(out.ContentLength), aws.ToTime(out.LastModified)), nil
}

// ReadFile reads the whole object.
func (s *S3FS) ReadFile(name string) ([]byte, error) {
	f, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, pathError("readfile", name, translate(err))
	}
	return data, nil
}

// Exists reports whether the object exists.
func (s *S3FS) Exists(name string) (bool, error) {
	_, err := s.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create opens the named object for writing; see CreateAtomic.
func (s *S3FS) Create(name string) (core.File, error) {
	return s.CreateAtomic(name)
}

// CreateAtomic returns a writer that streams into a managed upload.
// The object appears when Close returns; Abort cancels the upload.
func (s *S3FS) CreateAtomic(name string) (core.AbortableFile, error) {
	bucket, key, err := s.locate("create", name)
	if err != nil {
		return nil, err
	}
	return &writeFile{fs: s, bucket: bucket, key: key, name: name}, nil
}

// WriteFile uploads data as the named object.
func (s *S3FS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	f, err := s.CreateAtomic(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return err
	}
	return f.Close()
}

// MkdirAll is a no-op; S3 directories are virtual.
func (s *S3FS) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

// Remove deletes the object. Deleting a missing object succeeds.
func (s *S3FS) Remove(name string) error {
	bucket, key, err := s.locate("remove", name)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return pathError("remove", name, translate(err))
	}
	return nil
}

// Rename copies oldpath to newpath and deletes oldpath. Not atomic.
func (s *S3FS) Rename(oldpath, newpath string) error {
	srcBucket, srcKey, err := s.locate("rename", oldpath)
	if err != nil {
		return err
	}
	dstBucket, dstKey, err := s.locate("rename", newpath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySource(srcBucket, srcKey)),
	})
	if err != nil {
		return pathError("rename", oldpath, translate(err))
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(srcBucket),
		Key:    aws.String(srcKey),
	})
	if err != nil {
		return pathError("rename", oldpath, translate(err))
	}
	return nil
}

// copySource builds the URL-encoded "bucket/key" CopyObject expects.
func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

// Compile-time interface checks.
var (
	_ core.FS       = (*S3FS)(nil)
	_ core.AtomicFS = (*S3FS)(nil)
)
