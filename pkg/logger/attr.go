package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ItemID records a streamed item token under the key "item_id".
func ItemID(id string) slog.Attr {
	return slog.String("item_id", id)
}

// SubscriberID records the sink or subscription identifier under the key "subscriber_id".
// If id is empty, it returns an empty Attr.
func SubscriberID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscriber_id", id)
}

// Subscribers records the current number of attached subscribers.
func Subscribers(n int) slog.Attr {
	return slog.Int("subscribers", n)
}

// Dropped records how many pending items a slow subscriber skipped.
func Dropped(n uint64) slog.Attr {
	return slog.Uint64("dropped", n)
}

// RemoteAddr records the peer address under the key "remote_addr".
func RemoteAddr(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("remote_addr", addr)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
