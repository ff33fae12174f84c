package codec

import (
	"github.com/jmgilman/go/filehandler/errors"
)

// wrapCodecError wraps an error with CodeCodecFailed.
func wrapCodecError(err error, message string) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.CodeCodecFailed, message)
}

// wrapCodecErrorWithContext wraps an error with CodeCodecFailed and attaches context metadata.
func wrapCodecErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCodecFailed, message, ctx)
}

// newCodecError creates a CodeCodecFailed error with context.
func newCodecError(message string, ctx map[string]interface{}) errors.PlatformError {
	return errors.WithContextMap(errors.New(errors.CodeCodecFailed, message), ctx)
}

// wrapMalformedConfig wraps a YAML parser error with CodeMalformedConfig.
func wrapMalformedConfig(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeMalformedConfig, message, ctx)
}

// makeContext builds a context map from alternating keys and values.
// Non-string keys are skipped. Example: makeContext("format", "csv", "row", 3).
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

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
