package filehandler

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/jmgilman/go/filehandler/codec"
	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/errors"
	"github.com/jmgilman/go/filehandler/internal/logging"
	"github.com/jmgilman/go/filehandler/resolve"
)

// ReadDataset reads the CSV or Parquet file at path. The format comes from
// the path's extension; anything else fails with CodeUnsupportedFormat
// before the file is opened.
func ReadDataset(ctx context.Context, path string, opts ...Option) (frame *dataset.Frame, err error) {
	o := buildOptions(opts)
	loc := resolve.Resolve(path)
	log := o.log().WithOperation(logging.OpReadDataset)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, log, time.Since(start), err,
			"path", path, "backend", loc.Backend.String(), "format", loc.Format.String())
	}()

	if !loc.Format.Tabular() {
		return nil, unsupportedFormat(path, loc.Format.String())
	}
	rep, perr := dataset.ParseRepresentation(string(o.representation))
	if perr != nil {
		return nil, invalidInput(perr, "unknown dataset representation", path)
	}
	tab, err := codec.ForFormat(loc.Format, o.codecOptions())
	if err != nil {
		return nil, withPath(err, path)
	}

	f, err := o.resolveOpener().Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer closeRead(ctx, log, f, path)

	frame, err = tab.Decode(ctx, f)
	if err != nil {
		return nil, withPath(err, path)
	}

	frame, err = rep.Apply(frame)
	if err != nil {
		return nil, representationError(err, path, rep)
	}
	return frame, nil
}

// SaveDataset writes frame to path in the format given by WithFormat
// (default CSV), regardless of the path's extension. An unsupported format
// fails with CodeUnsupportedFormat before anything is created. If encoding
// fails the write is aborted and an existing file at path is left as it was.
func SaveDataset(ctx context.Context, frame *dataset.Frame, path string, opts ...Option) (err error) {
	o := buildOptions(opts)
	loc := resolve.Resolve(path)
	log := o.log().WithOperation(logging.OpSaveDataset)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, log, time.Since(start), err,
			"path", path, "backend", loc.Backend.String(), "format", o.format)
	}()

	format, ferr := resolve.ParseFormat(o.format)
	if ferr != nil || !format.Tabular() {
		return unsupportedFormat(path, o.format)
	}
	if frame == nil {
		return invalidInput(stderrors.New("nil frame"), "dataset is required", path)
	}
	tab, err := codec.ForFormat(format, o.codecOptions())
	if err != nil {
		return withPath(err, path)
	}

	return write(ctx, o, log, loc, func(w io.Writer) error {
		return tab.Encode(ctx, frame, w)
	})
}

// ReadConfig reads the YAML document at path. The extension is ignored.
// Parse failures are CodeMalformedConfig.
func ReadConfig(ctx context.Context, path string, opts ...Option) (doc codec.Document, err error) {
	o := buildOptions(opts)
	loc := resolve.Resolve(path)
	log := o.log().WithOperation(logging.OpReadConfig)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, log, time.Since(start), err,
			"path", path, "backend", loc.Backend.String(), "format", "yaml")
	}()

	f, err := o.resolveOpener().Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer closeRead(ctx, log, f, path)

	doc, err = codec.DecodeYAML(ctx, f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return doc, nil
}

// SaveConfig writes doc to path as block-style YAML with sorted keys.
func SaveConfig(ctx context.Context, doc codec.Document, path string, opts ...Option) (err error) {
	o := buildOptions(opts)
	loc := resolve.Resolve(path)
	log := o.log().WithOperation(logging.OpSaveConfig)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, log, time.Since(start), err,
			"path", path, "backend", loc.Backend.String(), "format", "yaml")
	}()

	return write(ctx, o, log, loc, func(w io.Writer) error {
		return codec.EncodeYAML(ctx, doc, w)
	})
}

// write opens loc for writing, runs encode and commits the result. The
// stream is aborted unless the commit is reached, including when encode
// panics.
func write(ctx context.Context, o *options, log *logging.Logger, loc resolve.Location, encode func(io.Writer) error) error {
	w, err := o.resolveOpener().Create(ctx, loc)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if abortErr := w.Abort(); abortErr != nil {
			log.Warn(ctx, "failed to abort write", "path", loc.Original, "error", abortErr)
		}
	}()

	if err := encode(w); err != nil {
		return withPath(err, loc.Original)
	}

	committed = true
	if err := w.Close(); err != nil {
		return backendUnavailable(err, "failed to commit write", loc)
	}
	return nil
}

func closeRead(ctx context.Context, log *logging.Logger, f io.Closer, path string) {
	if err := f.Close(); err != nil {
		log.Warn(ctx, "failed to close stream", "path", path, "error", err)
	}
}

func representationError(err error, path string, rep dataset.Representation) error {
	code := errors.CodeCodecFailed
	if stderrors.Is(err, dataset.ErrUnknownRepresentation) {
		code = errors.CodeInvalidInput
	}
	return errors.WrapWithContext(err, code,
		fmt.Sprintf("failed to convert dataset to %s representation", rep),
		makeContext("path", path, "representation", string(rep)))
}
