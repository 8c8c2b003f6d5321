package eventstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// ContentType is the media type of an event stream.
	ContentType = "text/event-stream"

	// PingEvent is the type of keep-alive events. They carry no data, so
	// clients never dispatch them.
	PingEvent = "ping"
)

// Writer writes events to a streaming HTTP response.
// It is safe for concurrent use.
type Writer struct {
	sse *datastar.ServerSentEventGenerator
}

// NewWriter sets the streaming headers and flushes them, so the client sees
// the response before the first event. It fails with ErrStreamingUnsupported
// before writing anything if w cannot flush.
func NewWriter(w http.ResponseWriter, r *http.Request) (sw *Writer, err error) {
	if !canFlush(w) {
		return nil, ErrStreamingUnsupported
	}
	w.Header().Set("X-Accel-Buffering", "no")

	// NewSSE panics when the initial flush fails, i.e. the client is gone.
	defer func() {
		if rec := recover(); rec != nil {
			sw, err = nil, fmt.Errorf("%w: %v", ErrFlushFailed, rec)
		}
	}()
	return &Writer{sse: datastar.NewSSE(w, r)}, nil
}

// Send writes e and flushes it to the client. It fails once the request
// context is done.
func (w *Writer) Send(e Event) error {
	if strings.ContainsAny(e.ID, "\r\n") || strings.ContainsAny(e.Name, "\r\n") {
		return ErrInvalidField
	}

	var opts []datastar.SSEEventOption
	if e.ID != "" {
		opts = append(opts, datastar.WithSSEEventId(e.ID))
	}
	if e.Retry > 0 {
		opts = append(opts, datastar.WithSSERetryDuration(e.Retry))
	}
	return w.sse.Send(datastar.EventType(e.Type()), splitLines(e.Data), opts...)
}

// SendJSON encodes v as the event payload.
func (w *Writer) SendJSON(name, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.Send(Event{ID: id, Name: name, Data: data})
}

// Ping writes a data-less keep-alive event. It keeps idle connections open
// through proxies.
func (w *Writer) Ping() error {
	return w.sse.Send(PingEvent, nil)
}

// splitLines splits data on \n, \r\n and \r. Empty data yields one empty line
// so the event is still dispatched.
func splitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func canFlush(w http.ResponseWriter) bool {
	for {
		switch rw := w.(type) {
		case http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = rw.Unwrap()
		default:
			return false
		}
	}
}
