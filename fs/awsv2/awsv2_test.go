package awsv2

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "empty uses default chain", config: Config{}},
		{name: "static credentials", config: Config{AccessKey: "a", SecretKey: "b"}},
		{name: "access key without secret", config: Config{AccessKey: "a"}, wantErr: "secret key is required"},
		{name: "part size too small", config: Config{PartSize: 1024}, wantErr: "part size must be at least"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), Config{
		Endpoint:     "http://localhost:9000",
		Region:       "us-east-1",
		AccessKey:    "a",
		SecretKey:    "b",
		UsePathStyle: true,
		Prefix:       "/base/",
	})
	require.NoError(t, err)
	assert.NotNil(t, s.client)
	assert.NotNil(t, s.uploader)
	assert.Equal(t, "base", s.prefix)
	assert.Equal(t, core.FSTypeRemote, s.Type())
}

func TestLocate(t *testing.T) {
	t.Run("bucket from path", func(t *testing.T) {
		bucket, key, err := (&S3FS{}).locate("open", "bucket/dir/file.parquet")
		require.NoError(t, err)
		assert.Equal(t, "bucket", bucket)
		assert.Equal(t, "dir/file.parquet", key)
	})

	t.Run("fixed bucket with prefix", func(t *testing.T) {
		bucket, key, err := (&S3FS{bucket: "b", prefix: "p"}).locate("open", "file.csv")
		require.NoError(t, err)
		assert.Equal(t, "b", bucket)
		assert.Equal(t, "p/file.csv", key)
	})

	t.Run("missing key", func(t *testing.T) {
		_, _, err := (&S3FS{}).locate("open", "bucket/")
		assert.ErrorIs(t, err, fs.ErrInvalid)
	})
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"typed no such key", &types.NoSuchKey{}, fs.ErrNotExist},
		{"typed not found", &types.NotFound{}, fs.ErrNotExist},
		{"api no such bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, fs.ErrNotExist},
		{"api access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, fs.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err), tt.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, translate(nil))
	})

	t.Run("unknown is wrapped", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := translate(cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "s3:")
	})
}

func TestCopySource(t *testing.T) {
	assert.Equal(t, "bucket/dir/file.csv", copySource("bucket", "dir/file.csv"))
	assert.Equal(t, "bucket/dir/my%20file.csv", copySource("bucket", "dir/my file.csv"))
}

func TestWriteFileAfterClose(t *testing.T) {
	f := &writeFile{name: "x.csv", closed: true}
	_, err := f.Write([]byte("a"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.NoError(t, f.Close())
	assert.NoError(t, f.Abort())
}
