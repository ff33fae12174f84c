package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/fs/internal/types"
	"github.com/jmgilman/go/filehandler/fs/minio/internal/errs"
	"github.com/minio/minio-go/v7"
)

// errAborted is delivered to an in-flight upload when a write is aborted.
var errAborted = errors.New("write aborted")

// File is a write handle for one object.
//
// Writes accumulate in memory until the multipart threshold is crossed, at
// which point a background PutObject starts and further writes stream
// through a pipe. Close finishes the upload; Abort discards it.
type File struct {
	fs     *MinioFS
	bucket string
	key    string
	name   string

	buffer       *bytes.Buffer
	pipeW        *io.PipeWriter
	putRes       chan error
	bytesWritten int64
	closed       bool
}

func newFileWrite(mfs *MinioFS, bucket, key, name string) *File {
	return &File{
		fs:     mfs,
		bucket: bucket,
		key:    key,
		name:   name,
		buffer: new(bytes.Buffer),
	}
}

// Read is not supported on write handles.
func (f *File) Read(_ []byte) (int, error) {
	return 0, errs.PathError("read", f.name, fs.ErrInvalid)
}

// Write appends p to the object being written.
// nolint:contextcheck // io.Writer.Write signature cannot accept a context parameter
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errs.PathError("write", f.name, fs.ErrClosed)
	}

	if f.pipeW != nil {
		n, err := f.pipeW.Write(p)
		f.bytesWritten += int64(n)
		if err != nil {
			return n, errs.PathError("write", f.name, err)
		}
		return n, nil
	}

	if int64(f.buffer.Len()+len(p)) <= f.fs.multipartThreshold || f.fs.client == nil {
		n, _ := f.buffer.Write(p)
		f.bytesWritten += int64(n)
		return n, nil
	}

	return f.startStreaming(p)
}

// startStreaming launches the background upload and flushes the buffer into it.
// nolint:contextcheck // Background upload; io.Writer.Write cannot accept context
func (f *File) startStreaming(p []byte) (int, error) {
	pr, pw := io.Pipe()
	f.pipeW = pw
	f.putRes = make(chan error, 1)

	go func() {
		_, err := f.fs.client.PutObject(context.Background(), f.bucket, f.key, pr, -1,
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		_ = pr.CloseWithError(err)
		f.putRes <- err
		close(f.putRes)
	}()

	if f.buffer.Len() > 0 {
		if _, err := pw.Write(f.buffer.Bytes()); err != nil {
			return 0, errs.PathError("write", f.name, err)
		}
	}
	f.buffer = nil

	n, err := pw.Write(p)
	f.bytesWritten += int64(n)
	if err != nil {
		return n, errs.PathError("write", f.name, err)
	}
	return n, nil
}

// Stat reports the bytes written so far.
func (f *File) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(f.key, f.bytesWritten, time.Now()), nil
}

// Name returns the name given to Create.
func (f *File) Name() string {
	return f.name
}

// Close completes the upload. It is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipeW != nil {
		_ = f.pipeW.Close()
		if err := <-f.putRes; err != nil {
			return errs.PathError("close", f.name, errs.Translate(err))
		}
		return nil
	}

	_, err := f.fs.client.PutObject(context.Background(), f.bucket, f.key,
		bytes.NewReader(f.buffer.Bytes()), int64(f.buffer.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return errs.PathError("close", f.name, errs.Translate(err))
	}
	return nil
}

// Abort discards the write. A streaming upload is failed so the object is
// never created; buffered data is simply dropped.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipeW != nil {
		_ = f.pipeW.CloseWithError(errAborted)
		<-f.putRes
	}
	f.buffer = nil
	return nil
}

// streamingFile reads an object without buffering it in memory.
type streamingFile struct {
	fs     *MinioFS
	bucket string
	key    string
	name   string
	obj    *minio.Object
	info   minio.ObjectInfo
	closed bool
}

// newStreamingFile stats the object first so missing objects fail at open.
func newStreamingFile(ctx context.Context, mfs *MinioFS, bucket, key, name string) (*streamingFile, error) {
	info, err := mfs.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	obj, err := mfs.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	return &streamingFile{
		fs:     mfs,
		bucket: bucket,
		key:    key,
		name:   name,
		obj:    obj,
		info:   info,
	}, nil
}

// Read reads from the object stream.
func (f *streamingFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, errs.PathError("read", f.name, fs.ErrClosed)
	}
	n, err := f.obj.Read(p)
	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

// ReadAt issues a range request; it does not move the stream position.
// nolint:contextcheck // io.ReaderAt cannot accept context; using background context
func (f *streamingFile) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, errs.PathError("readat", f.name, fs.ErrClosed)
	}
	if off < 0 {
		return 0, errs.PathError("readat", f.name, fs.ErrInvalid)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if off >= f.info.Size {
		return 0, io.EOF
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, off+int64(len(p))-1); err != nil {
		return 0, errs.PathError("readat", f.name, err)
	}
	obj, err := f.fs.client.GetObject(context.Background(), f.bucket, f.key, opts)
	if err != nil {
		return 0, errs.PathError("readat", f.name, errs.Translate(err))
	}
	defer func() { _ = obj.Close() }()

	n, err := io.ReadFull(obj, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

// Close releases the object stream.
func (f *streamingFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.obj.Close()
}

// Stat returns the object's metadata captured at open.
func (f *streamingFile) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(f.key, f.info.Size, f.info.LastModified), nil
}

// Name returns the name given to Open.
func (f *streamingFile) Name() string {
	return f.name
}

// Write is not supported on read handles.
func (f *streamingFile) Write(_ []byte) (int, error) {
	return 0, errs.PathError("write", f.name, fs.ErrInvalid)
}

// Compile-time interface checks.
var (
	_ core.AbortableFile = (*File)(nil)
	_ core.File          = (*streamingFile)(nil)
	_ io.ReaderAt        = (*streamingFile)(nil)
)
