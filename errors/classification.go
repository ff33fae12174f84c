package errors

// ErrorClassification tells callers whether retrying may help.
// The library itself never retries; classification is advisory.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures such as timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that will recur on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true for ClassificationRetryable.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimeout: ClassificationRetryable,

	CodeInvalidInput:       ClassificationPermanent,
	CodeInvalidConfig:      ClassificationPermanent,
	CodeUnsupportedFormat:  ClassificationPermanent,
	CodeBackendUnavailable: ClassificationPermanent,
	CodeMalformedConfig:    ClassificationPermanent,
	CodeCodecFailed:        ClassificationPermanent,
	CodeInternal:           ClassificationPermanent,
	CodeUnknown:            ClassificationPermanent,
}

// getDefaultClassification falls back to permanent for unmapped codes.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
