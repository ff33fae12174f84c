package errors

// ErrorCode identifies a failure category.
// Codes are strings so they read well in logs and serialize naturally.
type ErrorCode string

const (
	// Input errors.

	// CodeInvalidInput indicates the caller supplied an invalid argument.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates the library configuration is invalid.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeUnsupportedFormat indicates a dataset format outside the supported set.
	// It is always raised before any IO is attempted.
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Storage errors.

	// CodeBackendUnavailable indicates the storage backend could not open a stream.
	CodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// Codec errors.

	// CodeMalformedConfig indicates a configuration document could not be parsed.
	CodeMalformedConfig ErrorCode = "MALFORMED_CONFIG"

	// CodeCodecFailed indicates a tabular encode or decode failed.
	CodeCodecFailed ErrorCode = "CODEC_FAILED"

	// System errors.

	// CodeInternal indicates an internal invariant was broken.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
