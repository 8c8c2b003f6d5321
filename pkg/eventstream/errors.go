package eventstream

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamingUnsupported is returned when the response writer cannot flush.
	ErrStreamingUnsupported = errors.New("eventstream: streaming unsupported by response writer")

	// ErrFlushFailed is returned when the response headers cannot be flushed.
	ErrFlushFailed = errors.New("eventstream: flushing response failed")

	// ErrInvalidField is returned when an event field contains a line break.
	ErrInvalidField = errors.New("eventstream: field must not contain line breaks")
)

// DecodeError is returned when an event payload cannot be decoded.
type DecodeError struct {
	Event string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("eventstream: decode %s event: %v", e.Event, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
