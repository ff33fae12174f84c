// Package resolve decides where a path lives and what format it holds.
//
// Resolution is pure string inspection: nothing here touches storage.
package resolve

import (
	"path"
	"strings"
)

// Backend identifies the storage a path resolves to.
type Backend int

const (
	// Local is the local filesystem.
	Local Backend = iota
	// RemoteObjectStore is an S3-compatible object store.
	RemoteObjectStore
)

// String returns the backend's short name.
func (b Backend) String() string {
	switch b {
	case RemoteObjectStore:
		return "s3"
	default:
		return "local"
	}
}

// RemotePrefix marks a path as living in the remote object store.
const RemotePrefix = "s3://"

// backendRule maps a path prefix to a backend. Rules are tried in order.
type backendRule struct {
	prefix  string
	backend Backend
}

var backendRules = []backendRule{
	{prefix: RemotePrefix, backend: RemoteObjectStore},
}

// ResolveBackend returns the backend for path and the path with the
// backend prefix removed. Paths matching no rule are Local and returned
// unchanged. It never fails.
func ResolveBackend(p string) (Backend, string) {
	for _, r := range backendRules {
		if strings.HasPrefix(p, r.prefix) {
			return r.backend, strings.TrimPrefix(p, r.prefix)
		}
	}
	return Local, p
}

// Location is a fully resolved path.
type Location struct {
	// Original is the path as given.
	Original string
	// Backend is the storage the path lives in.
	Backend Backend
	// Path is Original without the backend prefix.
	Path string
	// Format is inferred from the extension.
	Format Format
}

// Resolve resolves backend, stripped path and format in one call.
func Resolve(p string) Location {
	backend, stripped := ResolveBackend(p)
	return Location{
		Original: p,
		Backend:  backend,
		Path:     stripped,
		Format:   ResolveFormat(stripped),
	}
}

// extension returns the lowercase text after the final "." of the last
// path element, or "" when there is none.
func extension(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}
