package eventstream

import (
	"encoding/json"
	"time"
)

// MessageEvent is the event name clients assume when none is sent.
const MessageEvent = "message"

// Event is a single server-sent event.
type Event struct {
	ID    string
	Name  string // empty means MessageEvent
	Data  []byte
	Retry time.Duration
}

// Type returns the event name, defaulting to MessageEvent.
func (e Event) Type() string {
	if e.Name == "" {
		return MessageEvent
	}
	return e.Name
}

// Decode unmarshals the JSON payload of the event into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &DecodeError{Event: e.Type(), Err: err}
	}
	return nil
}
