// Package pathutil normalizes object-store paths and splits them into
// bucket and key.
package pathutil

import (
	"fmt"
	"path"
	"strings"
)

// Normalize cleans a key: backslashes become slashes, "." and ".." are
// resolved, and leading/trailing slashes are trimmed. Returns "." for an
// empty result.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// NormalizePrefix is Normalize but returns "" instead of ".".
func NormalizePrefix(prefix string) string {
	p := Normalize(prefix)
	if p == "." {
		return ""
	}
	return p
}

// JoinPath joins a normalized prefix with name to form an object key.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	if name == "." {
		return prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// SplitBucket splits "bucket/some/key" into ("bucket", "some/key").
// Both parts must be non-empty.
func SplitBucket(p string) (bucket, key string, err error) {
	p = strings.TrimLeft(strings.ReplaceAll(p, "\\", "/"), "/")
	bucket, rest, _ := strings.Cut(p, "/")
	key = NormalizePrefix(rest)
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", p)
	}
	if key == "" {
		return "", "", fmt.Errorf("missing object key in %q", p)
	}
	return bucket, key, nil
}
