package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
)

// platformError is the only PlatformError implementation.
// Values are immutable; every mutator returns a copy.
type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *platformError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *platformError) Code() ErrorCode                     { return e.code }
func (e *platformError) Classification() ErrorClassification { return e.classification }
func (e *platformError) Message() string                     { return e.message }
func (e *platformError) Unwrap() error                       { return e.cause }

// Context returns a copy so callers cannot mutate the error.
func (e *platformError) Context() map[string]interface{} {
	return copyContext(e.context)
}

// LogValue renders the error as a structured slog group.
func (e *platformError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.code)),
		slog.String("message", e.message),
	}
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	keys := make([]string, 0, len(e.context))
	for k := range e.context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, e.context[k]))
	}
	return slog.GroupValue(attrs...)
}

// New creates a PlatformError with the code's default classification.
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. A PlatformError cause keeps its
// classification. Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
//
//	return errors.WrapWithContext(err, errors.CodeCodecFailed, "decode failed", map[string]interface{}{
//	    "path":   path,
//	    "format": "parquet",
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var inner PlatformError
	if stderrors.As(err, &inner) {
		classification = inner.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}

// WithContext returns a copy of err with key set in its context.
// Plain errors become CodeUnknown PlatformErrors. Returns nil if err is nil.
func WithContext(err error, key string, value interface{}) PlatformError {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap merges ctx into a copy of err's context; new keys win.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	pe := toPlatform(err)
	merged := copyContext(pe.context)
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}
	pe.context = merged
	return pe
}

// WithClassification returns a copy of err with the classification overridden.
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}
	pe := toPlatform(err)
	pe.classification = classification
	return pe
}

// toPlatform returns a fresh copy of the outermost PlatformError in err's
// chain, or a CodeUnknown wrapper around a plain error.
func toPlatform(err error) *platformError {
	var pe PlatformError
	if !stderrors.As(err, &pe) {
		return &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}
	return &platformError{
		code:           pe.Code(),
		classification: pe.Classification(),
		message:        pe.Message(),
		context:        pe.Context(),
		cause:          pe.Unwrap(),
	}
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
