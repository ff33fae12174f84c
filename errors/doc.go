// Package errors provides the structured error model used across filehandler.
//
// Every failure surfaced by the library is a PlatformError: a code naming the
// failure category, a retry classification, a message, optional context
// metadata and the wrapped cause. Errors stay compatible with the standard
// library (errors.Is, errors.As, errors.Unwrap).
//
// # Codes raised by filehandler
//
//   - CodeUnsupportedFormat: dataset format outside {csv, parquet}; raised before IO.
//     Context: "path", "format", "supported".
//   - CodeBackendUnavailable: the local or remote backend could not open a stream.
//     Context: "path", "backend". The backend error is the cause.
//   - CodeMalformedConfig: YAML parsing failed. Context: "diagnostic", and "line"
//     when the parser reports one.
//   - CodeCodecFailed: CSV or Parquet encode/decode failed. Context: "format", "path".
//
// # Usage
//
//	frame, err := filehandler.ReadDataset(ctx, "s3://bucket/data.parquet")
//	switch errors.GetCode(err) {
//	case errors.CodeUnsupportedFormat:
//	    // bad suffix
//	case errors.CodeBackendUnavailable:
//	    if errors.IsRetryable(err) {
//	        // transient network failure; the caller decides whether to retry
//	    }
//	}
//
// Errors also implement slog.LogValuer, so passing one to a structured logger
// emits its code, message and context as a group.
package errors
