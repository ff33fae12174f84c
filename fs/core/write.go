package core

import (
	stderrors "errors"
	"path"
)

// CreateFor opens name for writing on fsys.
//
// When fsys implements AtomicFS the file is staged and published on Close;
// otherwise Create is used and the returned File aborts by simply closing.
// Parent directories are created first.
func CreateFor(fsys FS, name string) (AbortableFile, error) {
	if dir := path.Dir(name); dir != "." && dir != "/" && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	if afs, ok := fsys.(AtomicFS); ok {
		return afs.CreateAtomic(name)
	}

	f, err := fsys.Create(name)
	if err != nil {
		return nil, err
	}
	if af, ok := f.(AbortableFile); ok {
		return af, nil
	}
	return closeOnAbort{File: f}, nil
}

// closeOnAbort adapts a plain File; aborting it just closes it.
type closeOnAbort struct {
	File
}

func (c closeOnAbort) Abort() error {
	err := c.File.Close()
	if stderrors.Is(err, ErrClosed) {
		return nil
	}
	return err
}
