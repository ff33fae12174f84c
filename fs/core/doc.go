// Package core defines the storage contracts that filehandler backends implement.
//
// A backend is an FS: read operations (ReadFS), write operations (WriteFS) and
// management operations (ManageFS), plus a Type used to tell local, in-memory
// and remote stores apart. FS embeds fs.FS, so every backend also works with
// the io/fs helpers.
//
// Optional capabilities are discovered with type assertions:
//
//	if afs, ok := filesystem.(core.AtomicFS); ok {
//	    f, err := afs.CreateAtomic("out/data.csv")
//	    ...
//	}
//
// CreateFor wraps that pattern: it returns an AbortableFile for any FS, using
// the atomic path where available.
//
// Providers:
//
//   - github.com/jmgilman/go/filehandler/fs/billy - local disk and in-memory
//   - github.com/jmgilman/go/filehandler/fs/minio - MinIO client, S3 compatible
//   - github.com/jmgilman/go/filehandler/fs/awsv2 - AWS SDK v2 S3 client
package core
