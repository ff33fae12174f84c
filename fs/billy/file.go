package billy

import (
	"errors"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/filehandler/fs/core"
)

// File wraps billy.File to implement core.File.
// The name is stored because billy backends format Name() differently.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read delegates to the underlying billy.File.
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// ReadAt delegates to the underlying billy.File.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// Write delegates to the underlying billy.File.
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close delegates to the underlying billy.File.
func (f *File) Close() error {
	return f.file.Close()
}

// Stat asks the filesystem, since billy.File has no Stat.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the name provided to Open/Create.
func (f *File) Name() string {
	return f.name
}

// Sync flushes to disk when the backend supports it; memfs has nothing to flush.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// atomicFile is the write handle returned by CreateAtomic.
type atomicFile struct {
	bfs    billy.Filesystem
	tmp    billy.File
	name   string
	closed bool
}

func (f *atomicFile) Read(_ []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrInvalid}
}

func (f *atomicFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: fs.ErrClosed}
	}
	return f.tmp.Write(p)
}

func (f *atomicFile) Stat() (fs.FileInfo, error) {
	return f.bfs.Stat(f.tmp.Name())
}

func (f *atomicFile) Name() string {
	return f.name
}

// Close publishes the staged data by renaming it over the target.
func (f *atomicFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	tmpName := f.tmp.Name()
	if err := f.tmp.Close(); err != nil {
		_ = f.bfs.Remove(tmpName)
		return err
	}
	// TempFile creates 0600 files; published files get the usual mode.
	if ch, ok := f.bfs.(billy.Change); ok {
		_ = ch.Chmod(tmpName, 0o644)
	}
	if err := f.bfs.Rename(tmpName, f.name); err != nil {
		_ = f.bfs.Remove(tmpName)
		return &fs.PathError{Op: "rename", Path: f.name, Err: err}
	}
	return nil
}

// Abort discards the staged data.
func (f *atomicFile) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true

	tmpName := f.tmp.Name()
	closeErr := f.tmp.Close()
	if err := f.bfs.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return closeErr
}

// Compile-time interface checks.
var (
	_ core.File          = (*File)(nil)
	_ core.Syncer        = (*File)(nil)
	_ core.AbortableFile = (*atomicFile)(nil)
)
