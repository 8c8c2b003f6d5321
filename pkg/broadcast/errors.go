package broadcast

import (
	"errors"
	"fmt"
)

var (
	// ErrCompleted is returned by Sink.Receive once the relay completed normally.
	ErrCompleted = errors.New("broadcast: relay completed")

	// ErrDetached is returned by Sink.Receive once the sink was detached from its relay.
	ErrDetached = errors.New("broadcast: sink detached")
)

// UpstreamError is the terminal error delivered to every sink when the
// upstream source fails.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("broadcast: upstream failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err carries an UpstreamError.
func IsUpstreamError(err error) bool {
	var e *UpstreamError
	return errors.As(err, &e)
}
