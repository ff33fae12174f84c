package awsv2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/fs/internal/types"
)

var errAborted = errors.New("write aborted")

// writeFile feeds a manager.Uploader through a pipe. The upload starts on
// the first Write (or on Close for an empty object).
type writeFile struct {
	fs     *S3FS
	bucket string
	key    string
	name   string

	pipeW   *io.PipeWriter
	done    chan error
	written int64
	closed  bool
}

func (f *writeFile) start() {
	pr, pw := io.Pipe()
	f.pipeW = pw
	f.done = make(chan error, 1)

	go func() {
		_, err := f.fs.uploader.Upload(context.Background(), &s3.PutObjectInput{
			Bucket:      aws.String(f.bucket),
			Key:         aws.String(f.key),
			Body:        pr,
			ContentType: aws.String("application/octet-stream"),
		})
		_ = pr.CloseWithError(err)
		f.done <- err
		close(f.done)
	}()
}

func (f *writeFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, pathError("write", f.name, fs.ErrClosed)
	}
	if f.pipeW == nil {
		f.start()
	}
	n, err := f.pipeW.Write(p)
	f.written += int64(n)
	if err != nil {
		return n, pathError("write", f.name, translate(err))
	}
	return n, nil
}

func (f *writeFile) Read(_ []byte) (int, error) {
	return 0, pathError("read", f.name, fs.ErrInvalid)
}

func (f *writeFile) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(f.key, f.written, time.Now()), nil
}

func (f *writeFile) Name() string {
	return f.name
}

// Close completes the upload.
func (f *writeFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipeW == nil {
		f.start()
	}
	_ = f.pipeW.Close()
	if err := <-f.done; err != nil {
		return pathError("close", f.name, translate(err))
	}
	return nil
}

// Abort fails the pipe so the uploader abandons the object. Multipart
// uploads already started are aborted by the manager.
func (f *writeFile) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipeW != nil {
		_ = f.pipeW.CloseWithError(errAborted)
		<-f.done
	}
	return nil
}

// readFile streams a GetObject body and serves ReadAt with range requests.
type readFile struct {
	fs     *S3FS
	bucket string
	key    string
	name   string
	body   io.ReadCloser
	info   fs.FileInfo
	closed bool
}

func (f *readFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, pathError("read", f.name, fs.ErrClosed)
	}
	return f.body.Read(p)
}

// ReadAt fetches bytes [off, off+len(p)) with a ranged GetObject.
// nolint:contextcheck // io.ReaderAt cannot accept context; using background context
func (f *readFile) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, pathError("readat", f.name, fs.ErrClosed)
	}
	if off < 0 {
		return 0, pathError("readat", f.name, fs.ErrInvalid)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if off >= f.info.Size() {
		return 0, io.EOF
	}

	out, err := f.fs.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1)),
	})
	if err != nil {
		return 0, pathError("readat", f.name, translate(err))
	}
	defer func() { _ = out.Body.Close() }()

	n, err := io.ReadFull(out.Body, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

func (f *readFile) Write(_ []byte) (int, error) {
	return 0, pathError("write", f.name, fs.ErrInvalid)
}

func (f *readFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

func (f *readFile) Name() string {
	return f.name
}

func (f *readFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.body.Close()
}

// Compile-time interface checks.
var (
	_ core.AbortableFile = (*writeFile)(nil)
	_ core.File          = (*readFile)(nil)
	_ io.ReaderAt        = (*readFile)(nil)
)
