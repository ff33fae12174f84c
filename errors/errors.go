package errors

// PlatformError is an error carrying a code, a retry classification,
// a human-readable message and optional context metadata.
//
// It interoperates with errors.Is, errors.As and errors.Unwrap through Unwrap.
type PlatformError interface {
	error

	// Code returns the error code identifying the failure category.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the message without the wrapped cause.
	Message() string

	// Context returns a copy of the attached metadata, or nil.
	Context() map[string]interface{}

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error
}
