// Package errs translates MinIO errors into io/fs errors.
package errs

import (
	"fmt"
	"io/fs"

	"github.com/minio/minio-go/v7"
)

// Translate converts MinIO error responses to stdlib fs errors.
// Anything unrecognized is wrapped with a "minio:" prefix.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fs.ErrNotExist
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fs.ErrPermission
	}

	return fmt.Errorf("minio: %w", err)
}

// PathError wraps err in an fs.PathError. Returns nil for nil.
func PathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

// PathErrorf creates an fs.PathError with a formatted error.
func PathErrorf(op, path, format string, args ...interface{}) error {
	return &fs.PathError{Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}
