package core

import "io/fs"

var (
	// ErrNotExist is re-exported from io/fs.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is re-exported from io/fs.
	ErrExist = fs.ErrExist

	// ErrPermission is re-exported from io/fs.
	ErrPermission = fs.ErrPermission

	// ErrClosed is re-exported from io/fs.
	ErrClosed = fs.ErrClosed
)
