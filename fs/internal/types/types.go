// Package types holds fs.FileInfo for object-store backends.
package types // nolint:revive // Internal package with clear purpose

import (
	"io/fs"
	"path"
	"time"
)

// FileInfo implements fs.FileInfo for objects.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileModTime time.Time
}

func (fi *FileInfo) Name() string       { return fi.FileName }
func (fi *FileInfo) Size() int64        { return fi.FileSize }
func (fi *FileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi *FileInfo) ModTime() time.Time { return fi.FileModTime }
func (fi *FileInfo) IsDir() bool        { return false }
func (fi *FileInfo) Sys() interface{}   { return nil }

// NewFileInfo builds a FileInfo named after the last element of key.
func NewFileInfo(key string, size int64, modTime time.Time) *FileInfo {
	return &FileInfo{
		FileName:    path.Base(key),
		FileSize:    size,
		FileModTime: modTime,
	}
}

var _ fs.FileInfo = (*FileInfo)(nil)
