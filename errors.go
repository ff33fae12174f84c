package filehandler

import (
	"context"
	stderrors "errors"

	"github.com/jmgilman/go/filehandler/errors"
	"github.com/jmgilman/go/filehandler/resolve"
)

// unsupportedFormat reports a dataset format outside the supported set.
func unsupportedFormat(path, format string) errors.PlatformError {
	return errors.WithContextMap(
		errors.Newf(errors.CodeUnsupportedFormat, "unsupported dataset format %q for %q (supported: csv, parquet)", format, path),
		makeContext("path", path, "format", format, "supported", resolve.SupportedNames()),
	)
}

// invalidInput reports a bad argument.
func invalidInput(err error, message, path string) errors.PlatformError {
	return errors.WrapWithContext(err, errors.CodeInvalidInput, message, makeContext("path", path))
}

// withPath attaches the caller's path to an error from a lower layer.
func withPath(err error, path string) error {
	if err == nil {
		return nil
	}
	return errors.WithContext(err, "path", path)
}

// contextError wraps a cancelled or expired context.
func contextError(err error, loc resolve.Location) errors.PlatformError {
	code := errors.CodeUnknown
	if stderrors.Is(err, context.DeadlineExceeded) {
		code = errors.CodeTimeout
	}
	return errors.WrapWithContext(err, code, "operation cancelled before IO",
		makeContext("path", loc.Original, "backend", loc.Backend.String()))
}

// makeContext builds a context map from alternating keys and values.
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}
	return ctx
}
