package bom

import "fmt"

// ExtractionError indicates that no plausible JSON payload could be located in
// an assistant response. It is deterministic and not worth retrying locally;
// callers decide whether to re-prompt the model.
type ExtractionError struct {
	msg string
}

func (e *ExtractionError) Error() string { return e.msg }

// ValidationError covers both malformed JSON in an extracted candidate and
// well-formed JSON that violates the BOM schema. The message names the first
// violated check in evaluation order.
type ValidationError struct {
	msg   string
	cause error
}

func (e *ValidationError) Error() string { return e.msg }

// Unwrap exposes the underlying decoder error when the failure came from
// json.Unmarshal rather than a schema check.
func (e *ValidationError) Unwrap() error { return e.cause }

func schemaErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
