package filehandler

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmgilman/go/filehandler/config"
	"github.com/jmgilman/go/filehandler/errors"
	"github.com/jmgilman/go/filehandler/fs/awsv2"
	"github.com/jmgilman/go/filehandler/fs/billy"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/fs/minio"
	"github.com/jmgilman/go/filehandler/internal/logging"
	"github.com/jmgilman/go/filehandler/resolve"
)

// OpenerConfig configures an Opener. All fields are optional.
type OpenerConfig struct {
	// Local serves non-"s3://" paths. Default: the host filesystem, with
	// relative paths resolved against the working directory.
	Local core.FS

	// Remote serves "s3://" paths. Default: built from Config on first use.
	Remote core.FS

	// Config configures the default remote backend. Default: config.Load("").
	Config *config.Config

	// Logger receives debug logs.
	Logger *slog.Logger
}

// Opener maps a resolved backend to a filesystem and opens streams on it.
//
// An Opener is safe for concurrent use. The remote filesystem is built at
// most once; a failed build is retried on the next call.
type Opener struct {
	local        core.FS
	defaultLocal bool
	cfg          *config.Config
	logger       *logging.Logger

	mu     sync.Mutex
	remote core.FS
}

// NewOpener creates an Opener. It does no IO.
func NewOpener(cfg OpenerConfig) *Opener {
	o := &Opener{
		local:  cfg.Local,
		remote: cfg.Remote,
		cfg:    cfg.Config,
		logger: logging.New(cfg.Logger),
	}
	if o.local == nil {
		o.local = billy.NewLocal()
		o.defaultLocal = true
	}
	return o
}

// FS returns the filesystem for backend.
func (o *Opener) FS(ctx context.Context, backend resolve.Backend) (core.FS, error) {
	if backend == resolve.Local {
		return o.local, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.remote != nil {
		return o.remote, nil
	}

	remote, err := o.buildRemote(ctx)
	if err != nil {
		return nil, err
	}
	o.remote = remote
	return remote, nil
}

// Open opens loc for reading. The caller must close the returned file.
// Failures are CodeBackendUnavailable.
func (o *Opener) Open(ctx context.Context, loc resolve.Location) (fs.File, error) {
	fsys, name, err := o.target(ctx, loc)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, backendUnavailable(err, "failed to open for reading", loc)
	}
	o.logger.Debug(ctx, "stream opened", "path", loc.Original, "backend", loc.Backend.String(), "mode", "read")
	return f, nil
}

// Create opens loc for writing, creating or truncating it. Nothing is
// visible at loc until the returned file is closed; Abort discards the
// write. Missing local parent directories are created.
func (o *Opener) Create(ctx context.Context, loc resolve.Location) (core.AbortableFile, error) {
	fsys, name, err := o.target(ctx, loc)
	if err != nil {
		return nil, err
	}

	f, err := core.CreateFor(fsys, name)
	if err != nil {
		return nil, backendUnavailable(err, "failed to open for writing", loc)
	}
	o.logger.Debug(ctx, "stream opened", "path", loc.Original, "backend", loc.Backend.String(), "mode", "write")
	return f, nil
}

// target returns the filesystem and backend-relative name for loc.
func (o *Opener) target(ctx context.Context, loc resolve.Location) (core.FS, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", contextError(err, loc)
	}

	fsys, err := o.FS(ctx, loc.Backend)
	if err != nil {
		return nil, "", backendUnavailable(err, "backend not available", loc)
	}

	name := loc.Path
	if loc.Backend == resolve.Local && o.defaultLocal {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, "", backendUnavailable(err, "failed to resolve local path", loc)
		}
		name = abs
	}
	return fsys, name, nil
}

func (o *Opener) buildRemote(ctx context.Context) (core.FS, error) {
	cfg := o.cfg
	if cfg == nil {
		loaded, err := config.Load("")
		if err != nil {
			return nil, err
		}
		cfg = &loaded
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o.logger.Debug(ctx, "building remote backend", "provider", string(cfg.Provider), "endpoint", cfg.Endpoint)

	switch cfg.Provider {
	case config.ProviderAWS:
		return awsv2.New(ctx, awsv2.Config{
			Endpoint:     awsEndpoint(*cfg),
			Region:       cfg.Region,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			SessionToken: cfg.SessionToken,
			UsePathStyle: cfg.PathStyle,
			PartSize:     cfg.PartSize,
		})
	default:
		return minio.NewMinIO(minio.Config{
			Endpoint:           cfg.Endpoint,
			Region:             cfg.Region,
			AccessKey:          cfg.AccessKey,
			SecretKey:          cfg.SecretKey,
			SessionToken:       cfg.SessionToken,
			UseSSL:             cfg.UseSSL,
			MultipartThreshold: cfg.PartSize,
		})
	}
}

// awsEndpoint converts the configured endpoint to the URL the AWS SDK
// expects. The AWS default endpoint is left to the SDK's resolver.
func awsEndpoint(cfg config.Config) string {
	switch {
	case cfg.Endpoint == "" || cfg.Endpoint == config.Default().Endpoint:
		return ""
	case strings.Contains(cfg.Endpoint, "://"):
		return cfg.Endpoint
	case cfg.UseSSL:
		return "https://" + cfg.Endpoint
	default:
		return "http://" + cfg.Endpoint
	}
}

// backendUnavailable wraps a storage failure. Missing files, permission
// problems, bad paths and bad configuration are permanent; anything else
// (network, throttling) is marked retryable for the caller's benefit.
func backendUnavailable(err error, message string, loc resolve.Location) errors.PlatformError {
	wrapped := errors.WrapWithContext(err, errors.CodeBackendUnavailable,
		fmt.Sprintf("%s %q", message, loc.Original),
		makeContext("path", loc.Original, "backend", loc.Backend.String(), "cause", causeOf(err)))

	switch {
	case stderrors.Is(err, fs.ErrNotExist),
		stderrors.Is(err, fs.ErrPermission),
		stderrors.Is(err, fs.ErrInvalid),
		errors.HasCode(err, errors.CodeInvalidConfig):
		return errors.WithClassification(wrapped, errors.ClassificationPermanent)
	default:
		return errors.WithClassification(wrapped, errors.ClassificationRetryable)
	}
}

// causeOf names the storage failure for the error context.
func causeOf(err error) string {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return "not_found"
	case stderrors.Is(err, fs.ErrPermission):
		return "forbidden"
	case stderrors.Is(err, fs.ErrInvalid):
		return "invalid_path"
	case errors.HasCode(err, errors.CodeInvalidConfig):
		return "invalid_config"
	default:
		return "unavailable"
	}
}
