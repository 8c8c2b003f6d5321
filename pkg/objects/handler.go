package objects

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
	"github.com/dmitrymomot/livefeed/pkg/eventstream"
	"github.com/dmitrymomot/livefeed/pkg/logger"
)

const (
	// CompleteEvent ends a stream whose upstream finished.
	CompleteEvent = "complete"
	// ErrorEvent ends a stream whose upstream failed; its data is the failure message.
	ErrorEvent = "error"

	defaultKeepAlive = 15 * time.Second
)

// Feed is the hot side a stream handler attaches to. Both broadcast.Relay and
// broadcast.Publisher satisfy it.
type Feed interface {
	Attach() *broadcast.Sink[Item]
	Detach(*broadcast.Sink[Item])
}

type streamOptions struct {
	keepAlive time.Duration
}

// StreamOption configures StreamHandler.
type StreamOption func(*streamOptions)

// WithKeepAlive sets how often a ping event is written to an idle stream.
// Non-positive values are ignored.
func WithKeepAlive(d time.Duration) StreamOption {
	return func(o *streamOptions) {
		if d > 0 {
			o.keepAlive = d
		}
	}
}

// WithStreamConfig applies StreamConfig.
func WithStreamConfig(cfg StreamConfig) StreamOption {
	return WithKeepAlive(cfg.KeepAlive)
}

// StreamHandler serves the feed as an event stream. Each request attaches its
// own sink, which is detached when the client goes away or the feed terminates.
// A failed write only ends this request.
func StreamHandler(feed Feed, log *slog.Logger, opts ...StreamOption) http.HandlerFunc {
	o := streamOptions{keepAlive: defaultKeepAlive}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.NewNope()
	}
	log = log.With(logger.Component("stream"))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Attached before the stream opens: items pushed once the client sees
		// the response are never missed.
		sink := feed.Attach()
		defer feed.Detach(sink)

		l := log.With(logger.SubscriberID(sink.ID()), logger.RemoteAddr(r.RemoteAddr))

		sw, err := eventstream.NewWriter(w, r)
		if err != nil {
			l.ErrorContext(ctx, "Cannot open event stream", logger.Error(err))
			if errors.Is(err, eventstream.ErrStreamingUnsupported) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			return
		}
		l.InfoContext(ctx, "Subscribing for GET /objects")

		for {
			item, err := receiveWithin(ctx, sink, o.keepAlive)
			switch {
			case err == nil:
				err = sw.SendJSON("", item.ID, item)
			case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
				err = sw.Ping()
			case errors.Is(err, broadcast.ErrCompleted):
				_ = sw.Send(eventstream.Event{Name: CompleteEvent})
				l.InfoContext(ctx, "Stream completed", logger.Event(CompleteEvent), logger.Dropped(sink.Dropped()))
				return
			case broadcast.IsUpstreamError(err):
				_ = sw.Send(eventstream.Event{Name: ErrorEvent, Data: []byte(upstreamMessage(err))})
				l.WarnContext(ctx, "Stream failed", logger.Event(ErrorEvent), logger.Error(err))
				return
			default:
				l.InfoContext(ctx, "Unsubscribed", logger.Dropped(sink.Dropped()))
				return
			}

			if err != nil {
				l.DebugContext(ctx, "Client write failed", logger.Error(err))
				return
			}
		}
	}
}

func receiveWithin(ctx context.Context, sink *broadcast.Sink[Item], d time.Duration) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return sink.Receive(ctx)
}

func upstreamMessage(err error) string {
	var ue *broadcast.UpstreamError
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}
