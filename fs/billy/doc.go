// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps osfs and serves the local backend; MemoryFS wraps memfs and
// is used in tests, including as a stand-in for the remote object store.
//
//	local := billy.NewLocal()
//	data, err := local.ReadFile("/srv/data/config.yaml")
//
// Both implement core.AtomicFS: CreateAtomic stages writes in a hidden
// temporary file in the target directory and renames it into place on Close,
// so a failed encode never leaves a truncated dataset behind.
//
// # Thread Safety
//
// Filesystem values are safe for concurrent use. File handles are not.
package billy
