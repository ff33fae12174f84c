package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote object store (S3 and compatibles).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the storage contract every backend implements.
// It embeds fs.FS so backends also work with io/fs helpers.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS

	// Type reports what kind of storage backs the filesystem.
	Type() FSType
}

// ReadFS defines read-only operations.
type ReadFS interface {
	// Open opens the named file for reading. The caller must close it.
	// Missing files yield an error matching fs.ErrNotExist.
	Open(name string) (fs.File, error)

	// Stat returns file metadata.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether name exists. A false result with a non-nil
	// error means existence could not be determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	// Data may only become visible once the returned File is closed.
	Create(name string) (File, error)

	// WriteFile writes data to name, creating or truncating it.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	// Backends with virtual directories treat this as a no-op.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines destructive operations.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	// Local backends rename atomically; object stores copy then delete.
	Rename(oldpath, newpath string) error
}

// File is an open file handle that can be read from or written to,
// depending on how it was opened.
type File interface {
	fs.File
	io.Writer

	// Name returns the name given to Open or Create.
	Name() string
}

// Optional capabilities, discovered with type assertions:
//
//   - AtomicFS on a filesystem: all-or-nothing writes.
//   - Aborter on a File: discard pending writes instead of committing them.
//   - Syncer on a File: flush to stable storage.

// AtomicFS is implemented by filesystems that can publish a file in one step.
//
// Writes to the returned File are staged and only replace name when Close
// succeeds. Calling Abort instead of Close discards the staged data and
// leaves any existing file at name untouched.
type AtomicFS interface {
	CreateAtomic(name string) (AbortableFile, error)
}

// Aborter discards a write in progress.
//
// After Abort the file is closed; a later Close is a no-op.
type Aborter interface {
	Abort() error
}

// AbortableFile is a writable File that can be aborted.
type AbortableFile interface {
	File
	Aborter
}

// Syncer allows flushing file contents to stable storage.
type Syncer interface {
	Sync() error
}
