package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/go/filehandler/fs/core"
)

// LocalFS wraps billy's osfs for local disk access.
// It is rooted at "/" by default, so callers pass absolute paths.
type LocalFS struct {
	base
}

// MemoryFS wraps billy's memfs. It is used in tests and as a stand-in for
// remote stores.
type MemoryFS struct {
	base
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot roots a LocalFS at dir instead of "/".
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// NewLocal creates a go-billy-backed local filesystem.
func NewLocal(opts ...Option) *LocalFS {
	cfg := config{root: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LocalFS{base{bfs: osfs.New(cfg.root), kind: core.FSTypeLocal}}
}

// NewMemory creates an empty go-billy-backed in-memory filesystem.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{base{bfs: memfs.New(), kind: core.FSTypeMemory}}
}

// base holds the implementation shared by LocalFS and MemoryFS.
type base struct {
	bfs  billy.Filesystem
	kind core.FSType
}

// Unwrap returns the underlying billy.Filesystem.
func (b *base) Unwrap() billy.Filesystem {
	return b.bfs
}

// Type reports whether the filesystem is local or in-memory.
func (b *base) Type() core.FSType {
	return b.kind
}

func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// Open opens the named file for reading.
func (b *base) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	return b.bfs.Stat(normalize(name))
}

// ReadFile reads the named file and returns its contents.
func (b *base) ReadFile(name string) ([]byte, error) {
	f, err := b.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *base) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (b *base) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// CreateAtomic stages writes in a temporary file next to name and renames
// it over name on Close. Abort removes the temporary file.
func (b *base) CreateAtomic(name string) (core.AbortableFile, error) {
	name = normalize(name)
	tmp, err := b.bfs.TempFile(filepath.ToSlash(filepath.Dir(name)), "."+filepath.Base(name)+".tmp-")
	if err != nil {
		return nil, err
	}
	return &atomicFile{bfs: b.bfs, tmp: tmp, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := b.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	return b.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	return b.bfs.Remove(normalize(name))
}

// Rename renames (moves) oldpath to newpath.
func (b *base) Rename(oldpath, newpath string) error {
	return b.bfs.Rename(normalize(oldpath), normalize(newpath))
}

// Compile-time interface checks.
var (
	_ core.FS       = (*LocalFS)(nil)
	_ core.FS       = (*MemoryFS)(nil)
	_ core.AtomicFS = (*LocalFS)(nil)
	_ core.AtomicFS = (*MemoryFS)(nil)
)
