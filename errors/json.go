package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat, serializable form of an error.
// The cause chain is excluded so backend internals do not leak to callers.
type ErrorResponse struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Classification string                 `json:"classification"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error into an ErrorResponse. Returns nil for nil.
// Plain errors map to CodeUnknown with their Error() text as message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var pe PlatformError
	if As(err, &pe) {
		resp.Message = pe.Message()
		resp.Context = pe.Context()
	}
	return resp
}

// MarshalJSON lets a PlatformError be passed straight to json.Marshal.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
