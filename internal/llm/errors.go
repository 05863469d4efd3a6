package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the model did not answer within the configured window.
	ErrTimeout = errors.New("model request timed out")

	// ErrMalformedResponse means the completion envelope lacked the expected
	// content field.
	ErrMalformedResponse = errors.New("malformed model response envelope")

	// ErrUnexpectedResponseShape means the completion parsed as JSON but was
	// neither an array nor a single-level object wrapping one.
	ErrUnexpectedResponseShape = errors.New("unexpected model response shape: want a JSON array of transactions")
)

// UpstreamError carries the status and body of a non-2xx completion response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// InvalidJSONError reports an unparseable completion. Prefix holds a bounded
// slice of the offending text for diagnostics, never the full payload.
type InvalidJSONError struct {
	Prefix string
	Err    error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v (text begins %q)", e.Err, e.Prefix)
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}
