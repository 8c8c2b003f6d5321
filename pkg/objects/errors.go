package objects

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is reported when the server answers GET /objects with a non-2xx status.
	ErrUnexpectedStatus = errors.New("objects: unexpected response status")

	// ErrConnectionFailed is reported when the request cannot be built or sent.
	ErrConnectionFailed = errors.New("objects: connection failed")

	// ErrStreamBroken is reported when reading or decoding the event stream fails mid-way.
	ErrStreamBroken = errors.New("objects: stream broken")

	// ErrMalformedItem is returned by ParseItem for payloads that are neither
	// an item object nor a bare token.
	ErrMalformedItem = errors.New("objects: malformed item")

	// ErrSourceUnavailable is returned by RedisSource.Run when the subscription cannot be confirmed.
	ErrSourceUnavailable = errors.New("objects: source unavailable")

	// ErrSourceClosed is returned by RedisSource.Run when the message channel closes underneath it.
	ErrSourceClosed = errors.New("objects: source closed")

	// ErrUnknownSource is returned for an OBJECTS_SOURCE other than SourceTicker or SourceRedis.
	ErrUnknownSource = errors.New("objects: unknown source kind")
)

// RemoteError is reported when the server ends the stream with an error event.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("objects: remote stream failed: %s", e.Message)
}

// IsRemoteError reports whether err carries a RemoteError.
func IsRemoteError(err error) bool {
	var e *RemoteError
	return errors.As(err, &e)
}
