package errors

import (
	stderrors "errors"
)

// Is wraps the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown when there is none.
//
//	if errors.GetCode(err) == errors.CodeUnsupportedFormat {
//	    // ask the user for a csv or parquet path
//	}
func GetCode(err error) ErrorCode {
	var pe PlatformError
	if err != nil && stderrors.As(err, &pe) {
		return pe.Code()
	}
	return CodeUnknown
}

// HasCode reports whether any PlatformError in err's chain carries code.
// Unlike GetCode it looks past the outermost error.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if pe, ok := err.(PlatformError); ok && pe.Code() == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// GetClassification returns the classification of the outermost
// PlatformError, defaulting to permanent so nothing is retried by accident.
func GetClassification(err error) ErrorClassification {
	var pe PlatformError
	if err != nil && stderrors.As(err, &pe) {
		return pe.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable reports whether err is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
