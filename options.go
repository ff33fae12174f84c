package filehandler

import (
	"log/slog"

	"github.com/jmgilman/go/filehandler/codec"
	"github.com/jmgilman/go/filehandler/config"
	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/internal/logging"
)

// Option configures a single facade call.
type Option func(*options)

type options struct {
	opener         *Opener
	local          core.FS
	remote         core.FS
	config         *config.Config
	logger         *slog.Logger
	format         string
	representation dataset.Representation
	csv            *codec.CSVOptions
}

func buildOptions(opts []Option) *options {
	o := &options{
		format:         "csv",
		representation: dataset.Default,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// resolveOpener returns the injected Opener or builds one for this call.
func (o *options) resolveOpener() *Opener {
	if o.opener != nil {
		return o.opener
	}
	return NewOpener(OpenerConfig{
		Local:  o.local,
		Remote: o.remote,
		Config: o.config,
		Logger: o.logger,
	})
}

func (o *options) log() *logging.Logger {
	return logging.New(o.logger)
}

func (o *options) codecOptions() codec.Options {
	return codec.Options{CSV: o.csv}
}

// WithOpener uses opener for storage access. It takes precedence over
// WithLocalFS, WithRemoteFS and WithConfig.
func WithOpener(opener *Opener) Option {
	return func(o *options) {
		o.opener = opener
	}
}

// WithLocalFS replaces the local disk backend. Relative paths are then
// interpreted by fsys rather than the working directory.
func WithLocalFS(fsys core.FS) Option {
	return func(o *options) {
		o.local = fsys
	}
}

// WithRemoteFS replaces the remote object store backend. The path after
// "s3://" is passed to fsys unchanged.
func WithRemoteFS(fsys core.FS) Option {
	return func(o *options) {
		o.remote = fsys
	}
}

// WithConfig configures the remote store explicitly instead of reading
// the environment.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithLogger enables debug logging of operations.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFormat sets the format SaveDataset writes ("csv" or "parquet").
// It is not checked against the path's extension. Default: "csv".
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithRepresentation sets the in-memory shape ReadDataset returns.
// Default: dataset.Default.
func WithRepresentation(r dataset.Representation) Option {
	return func(o *options) {
		o.representation = r
	}
}

// WithCSVOptions configures the CSV codec. Default: codec.DefaultCSVOptions.
func WithCSVOptions(opts codec.CSVOptions) Option {
	return func(o *options) {
		o.csv = &opts
	}
}
